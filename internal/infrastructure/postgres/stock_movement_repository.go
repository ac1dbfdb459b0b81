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

const movementsTable = "stock_movements"

var movementColumns = []string{
	"id", "movement_date", "product_name", "movement_type", "quantity", "unit",
	"reference_id", "source_destination", "cost", "unit_cost_snapshot", "created_at",
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository implementa repository.StockMovementRepository para PostgreSQL.
type StockMovementRepository struct {
	db Querier
}

// NewStockMovementRepository construye el repositorio. db puede ser el pool o una transacción.
func NewStockMovementRepository(db Querier) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

// Create inserta el movimiento. movement_date vacío toma la hora actual.
func (r *StockMovementRepository) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.MovementDate.IsZero() {
		m.MovementDate = time.Now()
	}
	sql, args, err := psql.Insert(movementsTable).
		Columns("movement_date", "product_name", "movement_type", "quantity", "unit",
			"reference_id", "source_destination", "cost", "unit_cost_snapshot").
		Values(m.MovementDate, m.ProductName, m.Type, m.Quantity, m.Unit,
			m.ReferenceID, m.SourceDestination, m.Cost, m.UnitCostSnapshot).
		Suffix("RETURNING id, movement_date, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.MovementDate, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepository) get(ctx context.Context, id int64, forUpdate bool) (*entity.StockMovement, error) {
	q := psql.Select(movementColumns...).From(movementsTable).Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var m entity.StockMovement
	if err := pgxscan.Get(ctx, r.db, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement %d: %w", id, err)
	}
	return &m, nil
}

func (r *StockMovementRepository) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.get(ctx, id, false)
}

func (r *StockMovementRepository) GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.get(ctx, id, true)
}

// Update reemplaza todos los campos salvo id y created_at.
func (r *StockMovementRepository) Update(ctx context.Context, m *entity.StockMovement) error {
	sql, args, err := psql.Update(movementsTable).SetMap(map[string]any{
		"movement_date":      m.MovementDate,
		"product_name":       m.ProductName,
		"movement_type":      m.Type,
		"quantity":           m.Quantity,
		"unit":               m.Unit,
		"reference_id":       m.ReferenceID,
		"source_destination": m.SourceDestination,
		"cost":               m.Cost,
		"unit_cost_snapshot": m.UnitCostSnapshot,
	}).Where(squirrel.Eq{"id": m.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update movement %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("movimiento", m.ID)
	}
	return nil
}

func (r *StockMovementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete(movementsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete movement %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("movimiento", id)
	}
	return nil
}

func (r *StockMovementRepository) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	q := psql.Select(movementColumns...).From(movementsTable).OrderBy("movement_date DESC", "id DESC")
	if filter.ProductName != "" {
		q = q.Where(squirrel.Eq{"product_name": filter.ProductName})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []*entity.StockMovement
	if err := pgxscan.Select(ctx, r.db, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return out, nil
}

// DailyFlow agrupa por día calendario; market no cuenta como entrada ni salida.
func (r *StockMovementRepository) DailyFlow(ctx context.Context, since time.Time) ([]repository.DailyFlow, error) {
	sql, args, err := psql.Select(
		"date_trunc('day', movement_date) AS day",
		"COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'in'), 0) AS inflow",
		"COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'out'), 0) AS outflow",
	).From(movementsTable).
		Where(squirrel.GtOrEq{"movement_date": since}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []repository.DailyFlow
	if err := pgxscan.Select(ctx, r.db, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("daily flow: %w", err)
	}
	return out, nil
}
