package inventory

import "github.com/shopspring/decimal"

// Escalas decimales fijas del libro. Redondeo: mitad lejos de cero (decimal.Round).
const (
	QuantityScale int32 = 3 // cantidades
	MoneyScale    int32 = 4 // montos (costo, base de costo)
	UnitCostScale int32 = 6 // costo unitario promedio
)

// MovingAverageUnitCost devuelve el costo promedio ponderado vigente: CostoBase / CantidadEnMano.
// Si no hay existencias positivas devuelve cero (no se extrae costo).
func MovingAverageUnitCost(costBasis, onHand decimal.Decimal) decimal.Decimal {
	if onHand.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return costBasis.DivRound(onHand, UnitCostScale)
}

// ExtractedCost es el costo que sale de la base al despachar quantity a unitCost.
func ExtractedCost(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitCost).Round(MoneyScale)
}

// HasScale indica si d no tiene más decimales que scale.
func HasScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Round(scale))
}
