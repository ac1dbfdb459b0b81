package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionBatch registra un lote de producción. Su alta, edición y baja generan movimientos de existencias.
type ProductionBatch struct {
	ID                  int64           `db:"id"`
	ProductionName      string          `db:"production_name"` // nombre del producto terminado
	ProductionDate      time.Time       `db:"production_date"`
	RawMaterialID       int64           `db:"raw_material_id"`
	RawMaterialQuantity decimal.Decimal `db:"raw_material_quantity"`
	OutputQuantity      decimal.Decimal `db:"production_output"`
	Efficiency          int             `db:"efficiency"`
	LabourCost          decimal.Decimal `db:"labour_cost"`
	OtherCost           decimal.Decimal `db:"other_cost"`
	TotalCost           decimal.Decimal `db:"total_cost"`
	Notes               string          `db:"notes"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}
