package inventory

import (
	"context"
	"fmt"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	domaininv "github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

// Engine aplica y revierte el efecto de movimientos sobre el libro de existencias.
// Siempre recibe repositorios atados a la transacción en curso.
type Engine struct {
	allowNegativeSeed bool
}

// NewEngine construye el motor. allowNegativeSeed permite que una salida cree un producto con existencia negativa.
func NewEngine(allowNegativeSeed bool) *Engine {
	return &Engine{allowNegativeSeed: allowNegativeSeed}
}

// Apply bloquea (o crea) la entrada del producto, suma el efecto de m y guarda en m el costo unitario usado.
func (e *Engine) Apply(ctx context.Context, ledger repository.LedgerRepository, m *entity.StockMovement) error {
	current, err := ledger.GetForUpdate(ctx, m.ProductName)
	if err != nil {
		return err
	}
	if current == nil {
		if m.Type == entity.MovementTypeOut && !e.allowNegativeSeed {
			return domain.NewValidationError("quantity", "product has no stock to issue")
		}
		current, err = ledger.GetOrCreateForUpdate(ctx, m.ProductName, m.Unit)
		if err != nil {
			return err
		}
	}

	delta, snapshot, err := domaininv.Effect(*current, *m)
	if err != nil {
		return err
	}
	m.UnitCostSnapshot = snapshot
	_, err = ledger.ApplyDelta(ctx, m.ProductName, delta)
	return err
}

// Reverse deshace el efecto guardado de m. La entrada del producto debe existir.
func (e *Engine) Reverse(ctx context.Context, ledger repository.LedgerRepository, m *entity.StockMovement) error {
	current, err := ledger.GetForUpdate(ctx, m.ProductName)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("movimiento %d: producto %q sin entrada: %w", m.ID, m.ProductName, domain.ErrLedgerInconsistent)
	}
	delta, err := domaininv.Reversal(*m)
	if err != nil {
		return err
	}
	_, err = ledger.ApplyDelta(ctx, m.ProductName, delta)
	return err
}

// Post aplica m y lo agrega al registro de movimientos.
func (e *Engine) Post(
	ctx context.Context,
	ledger repository.LedgerRepository,
	movements repository.StockMovementRepository,
	m *entity.StockMovement,
) error {
	if err := e.Apply(ctx, ledger, m); err != nil {
		return err
	}
	return movements.Create(ctx, m)
}
