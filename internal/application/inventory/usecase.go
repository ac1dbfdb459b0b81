package inventory

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	domaininv "github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

// MaxListLimit tope de filas en listados de movimientos.
const MaxListLimit = 500

// MovementInput entrada para registrar o corregir un movimiento.
type MovementInput struct {
	ProductName       string
	Type              string
	Quantity          decimal.Decimal
	Unit              string
	ReferenceID       string
	SourceDestination string
	Cost              decimal.Decimal
}

// Validate revisa las reglas de las que depende el libro. No toca el almacenamiento.
func (in MovementInput) Validate() error {
	name := domaininv.NormalizeProductName(in.ProductName)
	switch {
	case name == "":
		return domain.NewValidationError("product_name", "product name is required")
	case utf8.RuneCountInString(name) > 255:
		return domain.NewValidationError("product_name", "product name is too long")
	case !entity.IsValidMovementType(in.Type):
		return domain.NewValidationError("movement_type", "movement type must be one of in, out, market")
	case !in.Quantity.IsPositive():
		return domain.NewValidationError("quantity", "quantity must be greater than zero")
	case !domaininv.HasScale(in.Quantity, domaininv.QuantityScale):
		return domain.NewValidationError("quantity", "quantity allows at most 3 decimals")
	case in.Cost.IsNegative():
		return domain.NewValidationError("price", "price must not be negative")
	case !domaininv.HasScale(in.Cost, domaininv.MoneyScale):
		return domain.NewValidationError("price", "price allows at most 4 decimals")
	}
	return nil
}

func (in MovementInput) toMovement() *entity.StockMovement {
	return &entity.StockMovement{
		ProductName:       domaininv.NormalizeProductName(in.ProductName),
		Type:              in.Type,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		ReferenceID:       in.ReferenceID,
		SourceDestination: in.SourceDestination,
		Cost:              in.Cost,
	}
}

// MovementUseCase registra, corrige y elimina movimientos manteniendo el libro consistente,
// y expone las lecturas de existencias.
type MovementUseCase struct {
	tx          TxRunner
	ledgerRepo  repository.LedgerRepository
	movRepo     repository.StockMovementRepository
	engine      *Engine
	metrics     Metrics
	log         zerolog.Logger
	recentLimit int
	now         func() time.Time
}

// NewMovementUseCase construye el caso de uso. ledgerRepo y movRepo se usan solo para lecturas.
func NewMovementUseCase(
	tx TxRunner,
	ledgerRepo repository.LedgerRepository,
	movRepo repository.StockMovementRepository,
	engine *Engine,
	metrics Metrics,
	log zerolog.Logger,
	recentLimit int,
) *MovementUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if recentLimit <= 0 {
		recentLimit = 50
	}
	return &MovementUseCase{
		tx:          tx,
		ledgerRepo:  ledgerRepo,
		movRepo:     movRepo,
		engine:      engine,
		metrics:     metrics,
		log:         log,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

// Record aplica el movimiento al libro y lo registra, en una sola transacción.
func (uc *MovementUseCase) Record(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m := in.toMovement()
	err := uc.tx.Run(ctx, func(ledger repository.LedgerRepository, movements repository.StockMovementRepository, _ repository.ProductionRepository) error {
		return uc.engine.Post(ctx, ledger, movements, m)
	})
	if err != nil {
		uc.metrics.TransactionFailed("record")
		return nil, err
	}
	uc.metrics.MovementApplied("record", m.Type)
	uc.log.Info().
		Int64("movement_id", m.ID).
		Str("product", m.ProductName).
		Str("type", m.Type).
		Str("quantity", m.Quantity.String()).
		Msg("movimiento registrado")
	return m, nil
}

// Update reemplaza el movimiento id: revierte su efecto vigente, aplica el nuevo y reinicia la fecha.
func (uc *MovementUseCase) Update(ctx context.Context, id int64, in MovementInput) (*entity.StockMovement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m := in.toMovement()
	err := uc.tx.Run(ctx, func(ledger repository.LedgerRepository, movements repository.StockMovementRepository, _ repository.ProductionRepository) error {
		old, err := movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.NotFound("movimiento", id)
		}
		if err := ledger.LockMany(ctx, []string{old.ProductName, m.ProductName}); err != nil {
			return err
		}
		if err := uc.engine.Reverse(ctx, ledger, old); err != nil {
			return err
		}

		m.ID = old.ID
		m.CreatedAt = old.CreatedAt
		m.MovementDate = uc.now()
		if err := uc.engine.Apply(ctx, ledger, m); err != nil {
			return err
		}
		return movements.Update(ctx, m)
	})
	if err != nil {
		uc.metrics.TransactionFailed("update")
		return nil, err
	}
	uc.metrics.MovementApplied("update", m.Type)
	uc.log.Info().Int64("movement_id", id).Str("product", m.ProductName).Msg("movimiento corregido")
	return m, nil
}

// Delete revierte el efecto del movimiento y lo elimina.
func (uc *MovementUseCase) Delete(ctx context.Context, id int64) error {
	var deleted *entity.StockMovement
	err := uc.tx.Run(ctx, func(ledger repository.LedgerRepository, movements repository.StockMovementRepository, _ repository.ProductionRepository) error {
		old, err := movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.NotFound("movimiento", id)
		}
		if err := uc.engine.Reverse(ctx, ledger, old); err != nil {
			return err
		}
		deleted = old
		return movements.Delete(ctx, id)
	})
	if err != nil {
		uc.metrics.TransactionFailed("delete")
		return err
	}
	uc.metrics.MovementApplied("delete", deleted.Type)
	uc.log.Info().Int64("movement_id", id).Str("product", deleted.ProductName).Msg("movimiento eliminado")
	return nil
}

// GetMovement devuelve un movimiento por id.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id int64) (*entity.StockMovement, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("movimiento", id)
	}
	return m, nil
}

// ListMovements devuelve los movimientos más recientes, opcionalmente de un solo producto.
// limit <= 0 usa el límite configurado; el máximo es MaxListLimit.
func (uc *MovementUseCase) ListMovements(ctx context.Context, productName string, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = uc.recentLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return uc.movRepo.List(ctx, repository.MovementFilter{
		ProductName: domaininv.NormalizeProductName(productName),
		Limit:       limit,
	})
}

// ListStock devuelve todas las entradas del libro ordenadas por nombre.
func (uc *MovementUseCase) ListStock(ctx context.Context) ([]*entity.LedgerEntry, error) {
	return uc.ledgerRepo.List(ctx)
}

// GetStock devuelve la entrada de un producto.
func (uc *MovementUseCase) GetStock(ctx context.Context, productName string) (*entity.LedgerEntry, error) {
	name := domaininv.NormalizeProductName(productName)
	e, err := uc.ledgerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound("producto", name)
	}
	return e, nil
}

// Stats resumen de valorización del libro y flujo diario de los últimos 7 días.
type Stats struct {
	InHandValue   decimal.Decimal
	InMarketValue decimal.Decimal
	TotalValue    decimal.Decimal
	LowStockCount int
	Flow          []repository.DailyFlow
}

// Stats valoriza las existencias al costo promedio vigente de cada producto.
func (uc *MovementUseCase) Stats(ctx context.Context) (Stats, error) {
	entries, err := uc.ledgerRepo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, e := range entries {
		unitCost := domaininv.MovingAverageUnitCost(e.CostBasis, e.OnHandQuantity)
		s.InHandValue = s.InHandValue.Add(domaininv.ExtractedCost(e.OnHandQuantity, unitCost))
		s.InMarketValue = s.InMarketValue.Add(domaininv.ExtractedCost(e.MarketQuantity, unitCost))
		if e.IsLowStock() {
			s.LowStockCount++
		}
	}
	s.TotalValue = s.InHandValue.Add(s.InMarketValue)

	since := truncateDay(uc.now()).AddDate(0, 0, -6)
	s.Flow, err = uc.movRepo.DailyFlow(ctx, since)
	if err != nil {
		return Stats{}, fmt.Errorf("flujo diario: %w", err)
	}
	return s, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
