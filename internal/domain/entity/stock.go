package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry es el agregado mutable de existencias de un producto (una fila por nombre de producto).
// CostBasis es el valor total de lo que hay en mano, no un precio unitario.
type LedgerEntry struct {
	ID             string          `db:"id"`
	ProductName    string          `db:"product_name"`
	OnHandQuantity decimal.Decimal `db:"on_hand_quantity"`
	MarketQuantity decimal.Decimal `db:"market_quantity"`
	Unit           string          `db:"unit"`
	MinStockLevel  decimal.Decimal `db:"min_stock_level"`
	CostBasis      decimal.Decimal `db:"cost_basis"`
	Version        int64           `db:"version"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// IsLowStock indica si la cantidad en mano está por debajo del mínimo configurado.
func (e *LedgerEntry) IsLowStock() bool {
	return e.OnHandQuantity.LessThan(e.MinStockLevel)
}
