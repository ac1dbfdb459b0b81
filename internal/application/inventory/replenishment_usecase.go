package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/application/dto"
	"github.com/ghulammujtaba153/Dairy/internal/domain"
	domaininv "github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

// idealStockFactor: la reposición sugerida lleva el producto a 1.5 veces su mínimo.
var idealStockFactor = decimal.RequireFromString("1.5")

// ReplenishmentUseCase genera la lista de reposición de productos bajo su nivel mínimo
// y administra ese umbral.
type ReplenishmentUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(ledgerRepo repository.LedgerRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{ledgerRepo: ledgerRepo}
}

// SetMinStockLevel fija el nivel mínimo de un producto existente.
func (uc *ReplenishmentUseCase) SetMinStockLevel(ctx context.Context, productName string, level decimal.Decimal) (*dto.StockResponse, error) {
	name := domaininv.NormalizeProductName(productName)
	if level.IsNegative() {
		return nil, domain.NewValidationError("min_stock_level", "min stock level must not be negative")
	}
	if !domaininv.HasScale(level, domaininv.QuantityScale) {
		return nil, domain.NewValidationError("min_stock_level", "min stock level allows at most 3 decimals")
	}
	e, err := uc.ledgerRepo.SetMinStockLevel(ctx, name, level)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound("producto", name)
	}
	out := ToStockResponse(e)
	return &out, nil
}

// GenerateReplenishmentList devuelve los productos con existencia en mano bajo su mínimo, con la
// cantidad sugerida y su costo estimado al promedio vigente. El mayor déficit relativo va primero.
// Productos sin mínimo configurado no se incluyen.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	entries, err := uc.ledgerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, e := range entries {
		if !e.MinStockLevel.IsPositive() || !e.IsLowStock() {
			continue
		}
		ideal := e.MinStockLevel.Mul(idealStockFactor).Round(domaininv.QuantityScale)
		qty := ideal.Sub(e.OnHandQuantity)
		unitCost := domaininv.MovingAverageUnitCost(e.CostBasis, e.OnHandQuantity)

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductName:        e.ProductName,
			Unit:               e.Unit,
			CurrentStock:       e.OnHandQuantity,
			MinStockLevel:      e.MinStockLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           unitCost,
			EstimatedOrderCost: domaininv.ExtractedCost(qty, unitCost),
		})
	}

	// Déficit relativo = (mínimo - actual) / mínimo; desempate por nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra := a.MinStockLevel.Sub(a.CurrentStock).DivRound(a.MinStockLevel, domaininv.UnitCostScale)
		rb := b.MinStockLevel.Sub(b.CurrentStock).DivRound(b.MinStockLevel, domaininv.UnitCostScale)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.ProductName < b.ProductName
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
