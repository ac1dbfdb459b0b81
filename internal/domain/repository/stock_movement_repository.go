package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
)

// MovementFilter filtra el listado de movimientos.
type MovementFilter struct {
	ProductName string
	Limit       int
}

// DailyFlow agrega entradas y salidas de un día.
type DailyFlow struct {
	Day     time.Time       `db:"day"`
	Inflow  decimal.Decimal `db:"inflow"`
	Outflow decimal.Decimal `db:"outflow"`
}

// StockMovementRepository define el puerto de persistencia del registro de movimientos.
type StockMovementRepository interface {
	// Create inserta el movimiento y completa ID, MovementDate y CreatedAt.
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	// GetForUpdate bloquea la fila del movimiento. Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	DailyFlow(ctx context.Context, since time.Time) ([]DailyFlow, error)
}
