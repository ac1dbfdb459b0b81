package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionRequest body para POST /api/production.
type CreateProductionRequest struct {
	ProductionName      string           `json:"production_name" validate:"required,max=255"`
	ProductionDate      string           `json:"production_date" validate:"required,datetime=2006-01-02"`
	RawMaterialID       int64            `json:"raw_material_id" validate:"required,gt=0"`
	RawMaterialQuantity decimal.Decimal  `json:"raw_material_quantity" validate:"gte=0"`
	ProductionOutput    decimal.Decimal  `json:"production_output" validate:"gt=0"`
	Efficiency          int              `json:"efficiency" validate:"gte=0,lte=100"`
	LabourCost          *decimal.Decimal `json:"labour_cost" validate:"omitempty,gte=0"`
	OtherCost           *decimal.Decimal `json:"other_cost" validate:"omitempty,gte=0"`
	Notes               string           `json:"notes,omitempty"`
}

// UpdateProductionRequest body para PUT /api/production/:id. Los campos omitidos conservan su valor.
type UpdateProductionRequest struct {
	ProductionName      *string          `json:"production_name,omitempty" validate:"omitempty,min=1,max=255"`
	ProductionDate      *string          `json:"production_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RawMaterialID       *int64           `json:"raw_material_id,omitempty" validate:"omitempty,gt=0"`
	RawMaterialQuantity *decimal.Decimal `json:"raw_material_quantity,omitempty" validate:"omitempty,gte=0"`
	ProductionOutput    *decimal.Decimal `json:"production_output,omitempty" validate:"omitempty,gt=0"`
	Efficiency          *int             `json:"efficiency,omitempty" validate:"omitempty,gte=0,lte=100"`
	LabourCost          *decimal.Decimal `json:"labour_cost,omitempty" validate:"omitempty,gte=0"`
	OtherCost           *decimal.Decimal `json:"other_cost,omitempty" validate:"omitempty,gte=0"`
	Notes               *string          `json:"notes,omitempty"`
}

// ProductionResponse lote de producción.
type ProductionResponse struct {
	ID                  int64           `json:"id"`
	ProductionName      string          `json:"production_name"`
	ProductionDate      string          `json:"production_date"`
	RawMaterialID       int64           `json:"raw_material_id"`
	RawMaterialQuantity decimal.Decimal `json:"raw_material_quantity"`
	ProductionOutput    decimal.Decimal `json:"production_output"`
	Efficiency          int             `json:"efficiency"`
	LabourCost          decimal.Decimal `json:"labour_cost"`
	OtherCost           decimal.Decimal `json:"other_cost"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	Notes               string          `json:"notes"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ProductionStatsDTO estadísticas de producción.
type ProductionStatsDTO struct {
	TotalProduction         int64           `json:"totalProduction"`
	AvgEfficiency           int64           `json:"avgEfficiency"`
	MonthlyProductionNumber int64           `json:"monthlyProductionNumber"`
	ProductionCost          decimal.Decimal `json:"productionCost"`
}
