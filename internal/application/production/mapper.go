package production

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/application/dto"
	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError("production_date", "production date must be YYYY-MM-DD")
	}
	return t, nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// CreateInputFromRequest adapta el body HTTP. Costos ausentes valen cero.
func CreateInputFromRequest(in dto.CreateProductionRequest) (CreateInput, error) {
	date, err := parseDate(in.ProductionDate)
	if err != nil {
		return CreateInput{}, err
	}
	return CreateInput{
		ProductionName:      in.ProductionName,
		ProductionDate:      date,
		RawMaterialID:       in.RawMaterialID,
		RawMaterialQuantity: in.RawMaterialQuantity,
		OutputQuantity:      in.ProductionOutput,
		Efficiency:          in.Efficiency,
		LabourCost:          orZero(in.LabourCost),
		OtherCost:           orZero(in.OtherCost),
		Notes:               in.Notes,
	}, nil
}

// UpdateInputFromRequest adapta el body HTTP parcial.
func UpdateInputFromRequest(in dto.UpdateProductionRequest) (UpdateInput, error) {
	out := UpdateInput{
		ProductionName:      in.ProductionName,
		RawMaterialID:       in.RawMaterialID,
		RawMaterialQuantity: in.RawMaterialQuantity,
		OutputQuantity:      in.ProductionOutput,
		Efficiency:          in.Efficiency,
		LabourCost:          in.LabourCost,
		OtherCost:           in.OtherCost,
		Notes:               in.Notes,
	}
	if in.ProductionDate != nil {
		date, err := parseDate(*in.ProductionDate)
		if err != nil {
			return UpdateInput{}, err
		}
		out.ProductionDate = &date
	}
	return out, nil
}

// ToResponse convierte el lote al DTO de salida.
func ToResponse(b *entity.ProductionBatch) dto.ProductionResponse {
	return dto.ProductionResponse{
		ID:                  b.ID,
		ProductionName:      b.ProductionName,
		ProductionDate:      b.ProductionDate.Format(DateLayout),
		RawMaterialID:       b.RawMaterialID,
		RawMaterialQuantity: b.RawMaterialQuantity,
		ProductionOutput:    b.OutputQuantity,
		Efficiency:          b.Efficiency,
		LabourCost:          b.LabourCost,
		OtherCost:           b.OtherCost,
		TotalCost:           b.TotalCost,
		Notes:               b.Notes,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// ToStatsDTO redondea la eficiencia promedio a entero.
func ToStatsDTO(s repository.ProductionStats) dto.ProductionStatsDTO {
	return dto.ProductionStatsDTO{
		TotalProduction:         s.TotalBatches,
		AvgEfficiency:           s.AvgEfficiency.Round(0).IntPart(),
		MonthlyProductionNumber: s.MonthlyBatches,
		ProductionCost:          s.TotalCost,
	}
}
