package postgres

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

const ledgerTable = "ledger_entries"

var ledgerColumns = []string{
	"id", "product_name", "on_hand_quantity", "market_quantity", "unit",
	"min_stock_level", "cost_basis", "version", "created_at", "updated_at",
}

var _ repository.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository implementa repository.LedgerRepository para PostgreSQL.
type LedgerRepository struct {
	db Querier
}

// NewLedgerRepository construye el repositorio. db puede ser el pool o una transacción.
func NewLedgerRepository(db Querier) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) selectEntry() squirrel.SelectBuilder {
	return psql.Select(ledgerColumns...).From(ledgerTable)
}

// getOne devuelve nil, nil si no hay fila.
func (r *LedgerRepository) getOne(ctx context.Context, q squirrel.Sqlizer) (*entity.LedgerEntry, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var e entity.LedgerEntry
	if err := pgxscan.Get(ctx, r.db, &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *LedgerRepository) GetForUpdate(ctx context.Context, productName string) (*entity.LedgerEntry, error) {
	e, err := r.getOne(ctx, r.selectEntry().Where(squirrel.Eq{"product_name": productName}).Suffix("FOR UPDATE"))
	if err != nil {
		return nil, fmt.Errorf("ledger get for update %q: %w", productName, err)
	}
	return e, nil
}

// GetOrCreateForUpdate siembra la fila en cero si falta. Dos transacciones que siembran el mismo
// producto a la vez convergen en la misma fila por la restricción única.
func (r *LedgerRepository) GetOrCreateForUpdate(ctx context.Context, productName, seedUnit string) (*entity.LedgerEntry, error) {
	sql, args, err := psql.Insert(ledgerTable).
		Columns("id", "product_name", "unit").
		Values(uuid.NewString(), productName, seedUnit).
		Suffix("ON CONFLICT (product_name) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("ledger seed %q: %w", productName, err)
	}

	e, err := r.GetForUpdate(ctx, productName)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("ledger seed %q: fila ausente tras insertar: %w", productName, domain.ErrLedgerInconsistent)
	}
	return e, nil
}

// LockMany bloquea en orden de nombre las filas existentes de los productos indicados.
func (r *LedgerRepository) LockMany(ctx context.Context, productNames []string) error {
	names := slices.Clone(productNames)
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) == 0 {
		return nil
	}

	sql, args, err := psql.Select("id").From(ledgerTable).
		Where(squirrel.Eq{"product_name": names}).
		OrderBy("product_name").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("ledger lock %v: %w", names, err)
	}
	return nil
}

// ApplyDelta suma el delta en una sola sentencia y devuelve la fila resultante.
func (r *LedgerRepository) ApplyDelta(ctx context.Context, productName string, delta inventory.Delta) (*entity.LedgerEntry, error) {
	q := psql.Update(ledgerTable).
		Set("on_hand_quantity", squirrel.Expr("on_hand_quantity + ?", delta.OnHand)).
		Set("market_quantity", squirrel.Expr("market_quantity + ?", delta.Market)).
		Set("cost_basis", squirrel.Expr("cost_basis + ?", delta.CostBasis)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"product_name": productName}).
		Suffix("RETURNING " + strings.Join(ledgerColumns, ", "))

	e, err := r.getOne(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ledger apply delta %q: %w", productName, err)
	}
	if e == nil {
		return nil, fmt.Errorf("ledger apply delta %q: %w", productName, domain.ErrLedgerInconsistent)
	}
	return e, nil
}

func (r *LedgerRepository) SetMinStockLevel(ctx context.Context, productName string, level decimal.Decimal) (*entity.LedgerEntry, error) {
	q := psql.Update(ledgerTable).
		Set("min_stock_level", level).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"product_name": productName}).
		Suffix("RETURNING " + strings.Join(ledgerColumns, ", "))

	e, err := r.getOne(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ledger min stock %q: %w", productName, err)
	}
	return e, nil
}

func (r *LedgerRepository) GetByName(ctx context.Context, productName string) (*entity.LedgerEntry, error) {
	e, err := r.getOne(ctx, r.selectEntry().Where(squirrel.Eq{"product_name": productName}))
	if err != nil {
		return nil, fmt.Errorf("ledger get %q: %w", productName, err)
	}
	return e, nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]*entity.LedgerEntry, error) {
	sql, args, err := r.selectEntry().OrderBy("product_name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []*entity.LedgerEntry
	if err := pgxscan.Select(ctx, r.db, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("ledger list: %w", err)
	}
	return out, nil
}
