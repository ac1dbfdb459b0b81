package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest body para POST /api/inventory/movement y PUT /api/inventory/movement/:id.
type MovementRequest struct {
	ProductName       string           `json:"product_name" validate:"required,max=255"`
	MovementType      string           `json:"movement_type" validate:"required,oneof=in out market"`
	Quantity          decimal.Decimal  `json:"quantity" validate:"gt=0"`
	Unit              string           `json:"unit" validate:"required,max=20"`
	ReferenceID       string           `json:"reference_id,omitempty" validate:"max=50"`
	SourceDestination string           `json:"source_destination,omitempty" validate:"max=255"`
	Price             *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	Product string `query:"product"`
	Limit   int    `query:"limit" validate:"gte=0"`
}

// MinStockLevelRequest body para PUT /api/inventory/stock/:product/min-level.
type MinStockLevelRequest struct {
	MinStockLevel decimal.Decimal `json:"min_stock_level" validate:"gte=0"`
}

// MovementResponse movimiento saneado.
type MovementResponse struct {
	ID                int64           `json:"id"`
	MovementDate      time.Time       `json:"movement_date"`
	ProductName       string          `json:"product_name"`
	MovementType      string          `json:"movement_type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	ReferenceID       string          `json:"reference_id"`
	SourceDestination string          `json:"source_destination"`
	Price             decimal.Decimal `json:"price"`
	UnitCost          decimal.Decimal `json:"unit_cost"` // costo unitario usado al aplicar
	CreatedAt         time.Time       `json:"created_at"`
}

// StockResponse entrada del libro de existencias.
type StockResponse struct {
	ID             string          `json:"id"`
	ProductName    string          `json:"product_name"`
	InHandQuantity decimal.Decimal `json:"in_hand_quantity"`
	InMarketQty    decimal.Decimal `json:"in_market_quantity"`
	Unit           string          `json:"unit"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
	CostBasis      decimal.Decimal `json:"cost_basis"`
	UnitCost       decimal.Decimal `json:"unit_cost"` // CostBasis / InHandQuantity
	LowStock       bool            `json:"low_stock"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DailyFlowDTO entradas y salidas de un día.
type DailyFlowDTO struct {
	Date    string          `json:"date"` // "Jan 2"
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// InventoryStatsDTO valorización y tendencia de 7 días.
type InventoryStatsDTO struct {
	TotalValue    decimal.Decimal `json:"totalValue"`
	InHandValue   decimal.Decimal `json:"inHandValue"`
	InMarketValue decimal.Decimal `json:"inMarketValue"`
	LowStockCount int             `json:"lowStockCount"`
	MovementData  []DailyFlowDTO  `json:"movementData"`
}

// ReplenishmentSuggestionDTO representa un producto por debajo de su nivel mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductName        string          `json:"product_name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStockLevel      decimal.Decimal `json:"min_stock_level"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // MinStockLevel * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}
