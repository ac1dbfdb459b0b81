package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

const productionTable = "production"

var productionColumns = []string{
	"id", "production_name", "production_date", "raw_material_id", "raw_material_quantity",
	"production_output", "efficiency", "labour_cost", "other_cost", "total_cost", "notes",
	"created_at", "updated_at",
}

var _ repository.ProductionRepository = (*ProductionRepository)(nil)

// ProductionRepository implementa repository.ProductionRepository para PostgreSQL.
type ProductionRepository struct {
	db Querier
}

// NewProductionRepository construye el repositorio. db puede ser el pool o una transacción.
func NewProductionRepository(db Querier) *ProductionRepository {
	return &ProductionRepository{db: db}
}

func (r *ProductionRepository) Create(ctx context.Context, b *entity.ProductionBatch) error {
	sql, args, err := psql.Insert(productionTable).
		Columns("production_name", "production_date", "raw_material_id", "raw_material_quantity",
			"production_output", "efficiency", "labour_cost", "other_cost", "total_cost", "notes").
		Values(b.ProductionName, b.ProductionDate, b.RawMaterialID, b.RawMaterialQuantity,
			b.OutputQuantity, b.Efficiency, b.LabourCost, b.OtherCost, b.TotalCost, b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("insert production: %w", err)
	}
	return nil
}

func (r *ProductionRepository) get(ctx context.Context, id int64, forUpdate bool) (*entity.ProductionBatch, error) {
	q := psql.Select(productionColumns...).From(productionTable).Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var b entity.ProductionBatch
	if err := pgxscan.Get(ctx, r.db, &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production %d: %w", id, err)
	}
	return &b, nil
}

func (r *ProductionRepository) GetByID(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	return r.get(ctx, id, false)
}

func (r *ProductionRepository) GetForUpdate(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	return r.get(ctx, id, true)
}

func (r *ProductionRepository) Update(ctx context.Context, b *entity.ProductionBatch) error {
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = time.Now()
	}
	sql, args, err := psql.Update(productionTable).SetMap(map[string]any{
		"production_name":       b.ProductionName,
		"production_date":       b.ProductionDate,
		"raw_material_id":       b.RawMaterialID,
		"raw_material_quantity": b.RawMaterialQuantity,
		"production_output":     b.OutputQuantity,
		"efficiency":            b.Efficiency,
		"labour_cost":           b.LabourCost,
		"other_cost":            b.OtherCost,
		"total_cost":            b.TotalCost,
		"notes":                 b.Notes,
		"updated_at":            b.UpdatedAt,
	}).Where(squirrel.Eq{"id": b.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update production %d: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("lote", b.ID)
	}
	return nil
}

func (r *ProductionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete(productionTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete production %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("lote", id)
	}
	return nil
}

func (r *ProductionRepository) List(ctx context.Context) ([]*entity.ProductionBatch, error) {
	sql, args, err := psql.Select(productionColumns...).From(productionTable).
		OrderBy("production_date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []*entity.ProductionBatch
	if err := pgxscan.Select(ctx, r.db, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list production: %w", err)
	}
	return out, nil
}

func (r *ProductionRepository) Stats(ctx context.Context, monthStart time.Time) (repository.ProductionStats, error) {
	var s repository.ProductionStats
	sql, args, err := psql.Select("COUNT(*) AS total_batches").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE production_date >= ?) AS monthly_batches", monthStart)).
		Column("COALESCE(SUM(total_cost), 0) AS total_cost").
		Column("COALESCE(AVG(efficiency), 0) AS avg_efficiency").
		From(productionTable).
		ToSql()
	if err != nil {
		return s, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, r.db, &s, sql, args...); err != nil {
		return s, fmt.Errorf("production stats: %w", err)
	}
	return s, nil
}
