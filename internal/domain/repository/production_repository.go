package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
)

// ProductionStats resumen de lotes de producción.
type ProductionStats struct {
	TotalBatches   int64           `db:"total_batches"`
	MonthlyBatches int64           `db:"monthly_batches"`
	TotalCost      decimal.Decimal `db:"total_cost"`
	AvgEfficiency  decimal.Decimal `db:"avg_efficiency"`
}

// ProductionRepository define el puerto de persistencia de lotes de producción.
type ProductionRepository interface {
	// Create inserta el lote y completa ID, CreatedAt y UpdatedAt.
	Create(ctx context.Context, batch *entity.ProductionBatch) error
	GetByID(ctx context.Context, id int64) (*entity.ProductionBatch, error)
	// GetForUpdate bloquea la fila del lote. Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.ProductionBatch, error)
	Update(ctx context.Context, batch *entity.ProductionBatch) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context) ([]*entity.ProductionBatch, error)
	Stats(ctx context.Context, monthStart time.Time) (ProductionStats, error)
}
