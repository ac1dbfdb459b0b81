package inventory

import (
	"context"

	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se descarta completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.StockMovementRepository,
		productionRepo repository.ProductionRepository,
	) error) error
}

// Metrics recibe eventos del motor de existencias. Ver infrastructure/metrics.
type Metrics interface {
	MovementApplied(op, movementType string)
	TransactionFailed(op string)
}

// NopMetrics descarta todos los eventos.
type NopMetrics struct{}

func (NopMetrics) MovementApplied(string, string) {}
func (NopMetrics) TransactionFailed(string)       {}
