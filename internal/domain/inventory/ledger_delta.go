package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
)

// Delta es el cambio a sumar sobre una entrada del libro.
type Delta struct {
	OnHand    decimal.Decimal
	Market    decimal.Decimal
	CostBasis decimal.Decimal
}

// Neg devuelve el delta inverso.
func (d Delta) Neg() Delta {
	return Delta{OnHand: d.OnHand.Neg(), Market: d.Market.Neg(), CostBasis: d.CostBasis.Neg()}
}

// IsZero indica si el delta no cambia nada.
func (d Delta) IsZero() bool {
	return d.OnHand.IsZero() && d.Market.IsZero() && d.CostBasis.IsZero()
}

// ApplyTo devuelve una copia de la entrada con el delta sumado.
func (d Delta) ApplyTo(e entity.LedgerEntry) entity.LedgerEntry {
	e.OnHandQuantity = e.OnHandQuantity.Add(d.OnHand)
	e.MarketQuantity = e.MarketQuantity.Add(d.Market)
	e.CostBasis = e.CostBasis.Add(d.CostBasis)
	return e
}

// Effect calcula el delta de aplicar m sobre la entrada actual y el costo unitario usado.
//
//	in:     en mano +q, base +costo
//	out:    en mano -q, base -q*promedio (promedio tomado antes de restar; cero si en mano <= 0)
//	market: mercado +q, base sin cambio (pool independiente)
func Effect(current entity.LedgerEntry, m entity.StockMovement) (Delta, decimal.Decimal, error) {
	var snapshot decimal.Decimal
	switch m.Type {
	case entity.MovementTypeIn:
		if m.Quantity.IsPositive() {
			snapshot = m.Cost.DivRound(m.Quantity, UnitCostScale)
		}
	case entity.MovementTypeOut, entity.MovementTypeMarket:
		snapshot = MovingAverageUnitCost(current.CostBasis, current.OnHandQuantity)
	default:
		return Delta{}, decimal.Zero, domain.NewValidationError("movement_type", fmt.Sprintf("tipo de movimiento desconocido %q", m.Type))
	}
	return deltaFor(m.Type, m.Quantity, m.Cost, snapshot), snapshot, nil
}

// Reversal devuelve el delta que deshace m, usando el costo unitario guardado en el movimiento.
func Reversal(m entity.StockMovement) (Delta, error) {
	if !entity.IsValidMovementType(m.Type) {
		return Delta{}, fmt.Errorf("movimiento %d: tipo %q: %w", m.ID, m.Type, domain.ErrLedgerInconsistent)
	}
	return deltaFor(m.Type, m.Quantity, m.Cost, m.UnitCostSnapshot).Neg(), nil
}

func deltaFor(movementType string, quantity, cost, unitCost decimal.Decimal) Delta {
	switch movementType {
	case entity.MovementTypeIn:
		return Delta{OnHand: quantity, CostBasis: cost}
	case entity.MovementTypeOut:
		return Delta{OnHand: quantity.Neg(), CostBasis: ExtractedCost(quantity, unitCost).Neg()}
	case entity.MovementTypeMarket:
		return Delta{Market: quantity}
	}
	return Delta{}
}
