package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/application/dto"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	domaininv "github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
)

// InputFromRequest adapta el body HTTP a MovementInput. Price ausente equivale a costo cero.
func InputFromRequest(in dto.MovementRequest) MovementInput {
	cost := decimal.Zero
	if in.Price != nil {
		cost = *in.Price
	}
	return MovementInput{
		ProductName:       in.ProductName,
		Type:              in.MovementType,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		ReferenceID:       in.ReferenceID,
		SourceDestination: in.SourceDestination,
		Cost:              cost,
	}
}

// RecordFromRequest registra un movimiento a partir del body HTTP.
func (uc *MovementUseCase) RecordFromRequest(ctx context.Context, in dto.MovementRequest) (*dto.MovementResponse, error) {
	m, err := uc.Record(ctx, InputFromRequest(in))
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

// UpdateFromRequest corrige un movimiento a partir del body HTTP.
func (uc *MovementUseCase) UpdateFromRequest(ctx context.Context, id int64, in dto.MovementRequest) (*dto.MovementResponse, error) {
	m, err := uc.Update(ctx, id, InputFromRequest(in))
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:                m.ID,
		MovementDate:      m.MovementDate,
		ProductName:       m.ProductName,
		MovementType:      m.Type,
		Quantity:          m.Quantity,
		Unit:              m.Unit,
		ReferenceID:       m.ReferenceID,
		SourceDestination: m.SourceDestination,
		Price:             m.Cost,
		UnitCost:          m.UnitCostSnapshot,
		CreatedAt:         m.CreatedAt,
	}
}

// ToStockResponse convierte una entrada del libro al DTO de salida.
func ToStockResponse(e *entity.LedgerEntry) dto.StockResponse {
	return dto.StockResponse{
		ID:             e.ID,
		ProductName:    e.ProductName,
		InHandQuantity: e.OnHandQuantity,
		InMarketQty:    e.MarketQuantity,
		Unit:           e.Unit,
		MinStockLevel:  e.MinStockLevel,
		CostBasis:      e.CostBasis,
		UnitCost:       domaininv.MovingAverageUnitCost(e.CostBasis, e.OnHandQuantity),
		LowStock:       e.IsLowStock(),
		UpdatedAt:      e.UpdatedAt,
	}
}

// ToStatsDTO convierte Stats al formato del tablero.
func ToStatsDTO(s Stats) dto.InventoryStatsDTO {
	flow := make([]dto.DailyFlowDTO, 0, len(s.Flow))
	for _, f := range s.Flow {
		flow = append(flow, dto.DailyFlowDTO{
			Date:    f.Day.Format("Jan 2"),
			Inflow:  f.Inflow,
			Outflow: f.Outflow,
		})
	}
	return dto.InventoryStatsDTO{
		TotalValue:    s.TotalValue,
		InHandValue:   s.InHandValue,
		InMarketValue: s.InMarketValue,
		LowStockCount: s.LowStockCount,
		MovementData:  flow,
	}
}
