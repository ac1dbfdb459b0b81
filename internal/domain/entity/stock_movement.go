package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de existencias.
const (
	MovementTypeIn     = "in"     // entrada a bodega
	MovementTypeOut    = "out"    // salida de bodega
	MovementTypeMarket = "market" // envío al pool "en mercado"
)

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeMarket:
		return true
	}
	return false
}

// StockMovement es una fila del registro de movimientos (append-only, corregible de forma explícita).
// UnitCostSnapshot guarda el costo unitario usado al aplicar el movimiento para que la reversión sea exacta.
type StockMovement struct {
	ID                int64           `db:"id"`
	MovementDate      time.Time       `db:"movement_date"`
	ProductName       string          `db:"product_name"`
	Type              string          `db:"movement_type"`
	Quantity          decimal.Decimal `db:"quantity"`
	Unit              string          `db:"unit"`
	ReferenceID       string          `db:"reference_id"`
	SourceDestination string          `db:"source_destination"`
	Cost              decimal.Decimal `db:"cost"`
	UnitCostSnapshot  decimal.Decimal `db:"unit_cost_snapshot"`
	CreatedAt         time.Time       `db:"created_at"`
}
