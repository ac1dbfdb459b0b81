package production

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/application/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	domaininv "github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

// Orígenes de los movimientos sintetizados por producción.
const (
	SourceProductionLine = "Production Line"
	SourceAdjustment     = "Production Adjustment"
	SourceDeletion       = "Production Deleted"
)

// DateLayout formato de production_date.
const DateLayout = "2006-01-02"

// UseCase mantiene los lotes de producción y sintetiza los movimientos que los reflejan en el libro.
type UseCase struct {
	tx       inventory.TxRunner
	prodRepo repository.ProductionRepository
	engine   *inventory.Engine
	metrics  inventory.Metrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. prodRepo se usa solo para lecturas.
func NewUseCase(
	tx inventory.TxRunner,
	prodRepo repository.ProductionRepository,
	engine *inventory.Engine,
	metrics inventory.Metrics,
	log zerolog.Logger,
) *UseCase {
	if metrics == nil {
		metrics = inventory.NopMetrics{}
	}
	return &UseCase{tx: tx, prodRepo: prodRepo, engine: engine, metrics: metrics, log: log, now: time.Now}
}

// CreateInput datos de un lote nuevo.
type CreateInput struct {
	ProductionName      string
	ProductionDate      time.Time
	RawMaterialID       int64
	RawMaterialQuantity decimal.Decimal
	OutputQuantity      decimal.Decimal
	Efficiency          int
	LabourCost          decimal.Decimal
	OtherCost           decimal.Decimal
	Notes               string
}

// UpdateInput cambios parciales; nil conserva el valor actual.
type UpdateInput struct {
	ProductionName      *string
	ProductionDate      *time.Time
	RawMaterialID       *int64
	RawMaterialQuantity *decimal.Decimal
	OutputQuantity      *decimal.Decimal
	Efficiency          *int
	LabourCost          *decimal.Decimal
	OtherCost           *decimal.Decimal
	Notes               *string
}

func validateBatch(b *entity.ProductionBatch) error {
	switch {
	case b.ProductionName == "":
		return domain.NewValidationError("production_name", "production name is required")
	case b.ProductionDate.IsZero():
		return domain.NewValidationError("production_date", "production date is required")
	case b.RawMaterialID <= 0:
		return domain.NewValidationError("raw_material_id", "raw material id is required")
	case b.RawMaterialQuantity.IsNegative():
		return domain.NewValidationError("raw_material_quantity", "raw material quantity cannot be negative")
	case !b.OutputQuantity.IsPositive():
		return domain.NewValidationError("production_output", "production output must be greater than zero")
	case !domaininv.HasScale(b.OutputQuantity, domaininv.QuantityScale):
		return domain.NewValidationError("production_output", "production output allows at most 3 decimals")
	case b.Efficiency < 0 || b.Efficiency > 100:
		return domain.NewValidationError("efficiency", "efficiency must be between 0 and 100")
	case b.LabourCost.IsNegative():
		return domain.NewValidationError("labour_cost", "labour cost cannot be negative")
	case b.OtherCost.IsNegative():
		return domain.NewValidationError("other_cost", "other cost cannot be negative")
	case !domaininv.HasScale(b.LabourCost, domaininv.MoneyScale) || !domaininv.HasScale(b.OtherCost, domaininv.MoneyScale):
		return domain.NewValidationError("labour_cost", "costs allow at most 4 decimals")
	}
	return nil
}

// Create guarda el lote y registra la entrada de su producción como movimiento BATCH-<id>.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.ProductionBatch, error) {
	b := &entity.ProductionBatch{
		ProductionName:      domaininv.NormalizeProductName(in.ProductionName),
		ProductionDate:      in.ProductionDate,
		RawMaterialID:       in.RawMaterialID,
		RawMaterialQuantity: in.RawMaterialQuantity,
		OutputQuantity:      in.OutputQuantity,
		Efficiency:          in.Efficiency,
		LabourCost:          in.LabourCost,
		OtherCost:           in.OtherCost,
		TotalCost:           in.LabourCost.Add(in.OtherCost),
		Notes:               in.Notes,
	}
	if err := validateBatch(b); err != nil {
		return nil, err
	}

	err := uc.tx.Run(ctx, func(ledger repository.LedgerRepository, movements repository.StockMovementRepository, batches repository.ProductionRepository) error {
		if err := batches.Create(ctx, b); err != nil {
			return err
		}
		return uc.engine.Post(ctx, ledger, movements, &entity.StockMovement{
			ProductName:       b.ProductionName,
			Type:              entity.MovementTypeIn,
			Quantity:          b.OutputQuantity,
			Unit:              domaininv.UnitForProduct(b.ProductionName),
			ReferenceID:       reference("BATCH", b.ID),
			SourceDestination: SourceProductionLine,
			Cost:              b.TotalCost,
		})
	})
	if err != nil {
		uc.metrics.TransactionFailed("production_create")
		return nil, err
	}
	uc.metrics.MovementApplied("production_create", entity.MovementTypeIn)
	uc.log.Info().Int64("batch_id", b.ID).Str("product", b.ProductionName).Msg("lote de producción registrado")
	return b, nil
}

// Update aplica los cambios parciales y ajusta el libro por la diferencia de producción (ADJ-<id>).
// Si cambia el producto, la producción anterior sale del producto viejo y la nueva entra al nuevo.
// Cambios solo de costo no mueven el libro.
func (uc *UseCase) Update(ctx context.Context, id int64, in UpdateInput) (*entity.ProductionBatch, error) {
	var updated *entity.ProductionBatch
	err := uc.tx.Run(ctx, func(ledger repository.LedgerRepository, movements repository.StockMovementRepository, batches repository.ProductionRepository) error {
		old, err := batches.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.NotFound("lote", id)
		}
		b := merge(*old, in)
		if err := validateBatch(&b); err != nil {
			return err
		}

		if old.ProductionName != b.ProductionName {
			if err := ledger.LockMany(ctx, []string{old.ProductionName, b.ProductionName}); err != nil {
				return err
			}
		}
		ref := reference("ADJ", id)
		for _, m := range adjustments(old, &b, ref) {
			if err := uc.engine.Post(ctx, ledger, movements, m); err != nil {
				return err
			}
		}

		b.UpdatedAt = uc.now()
		if err := batches.Update(ctx, &b); err != nil {
			return err
		}
		updated = &b
		return nil
	})
	if err != nil {
		uc.metrics.TransactionFailed("production_update")
		return nil, err
	}
	uc.metrics.MovementApplied("production_update", "adjust")
	uc.log.Info().Int64("batch_id", id).Str("product", updated.ProductionName).Msg("lote de producción actualizado")
	return updated, nil
}

// Delete retira del libro la producción completa del lote (DEL-<id>) y elimina el lote.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	err := uc.tx.Run(ctx, func(ledger repository.LedgerRepository, movements repository.StockMovementRepository, batches repository.ProductionRepository) error {
		old, err := batches.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.NotFound("lote", id)
		}
		if err := uc.engine.Post(ctx, ledger, movements, &entity.StockMovement{
			ProductName:       old.ProductionName,
			Type:              entity.MovementTypeOut,
			Quantity:          old.OutputQuantity,
			Unit:              domaininv.UnitForProduct(old.ProductionName),
			ReferenceID:       reference("DEL", id),
			SourceDestination: SourceDeletion,
		}); err != nil {
			return err
		}
		return batches.Delete(ctx, id)
	})
	if err != nil {
		uc.metrics.TransactionFailed("production_delete")
		return err
	}
	uc.metrics.MovementApplied("production_delete", entity.MovementTypeOut)
	uc.log.Info().Int64("batch_id", id).Msg("lote de producción eliminado")
	return nil
}

// Get devuelve un lote por id.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	b, err := uc.prodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("lote", id)
	}
	return b, nil
}

// List devuelve los lotes, el más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]*entity.ProductionBatch, error) {
	return uc.prodRepo.List(ctx)
}

// Stats resumen total y del mes en curso.
func (uc *UseCase) Stats(ctx context.Context) (repository.ProductionStats, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return uc.prodRepo.Stats(ctx, monthStart)
}

func merge(b entity.ProductionBatch, in UpdateInput) entity.ProductionBatch {
	if in.ProductionName != nil {
		b.ProductionName = domaininv.NormalizeProductName(*in.ProductionName)
	}
	if in.ProductionDate != nil {
		b.ProductionDate = *in.ProductionDate
	}
	if in.RawMaterialID != nil {
		b.RawMaterialID = *in.RawMaterialID
	}
	if in.RawMaterialQuantity != nil {
		b.RawMaterialQuantity = *in.RawMaterialQuantity
	}
	if in.OutputQuantity != nil {
		b.OutputQuantity = *in.OutputQuantity
	}
	if in.Efficiency != nil {
		b.Efficiency = *in.Efficiency
	}
	if in.LabourCost != nil {
		b.LabourCost = *in.LabourCost
	}
	if in.OtherCost != nil {
		b.OtherCost = *in.OtherCost
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	b.TotalCost = b.LabourCost.Add(b.OtherCost)
	return b
}

// adjustments calcula los movimientos que llevan el libro del lote old al lote b.
func adjustments(old, b *entity.ProductionBatch, ref string) []*entity.StockMovement {
	if old.ProductionName != b.ProductionName {
		return []*entity.StockMovement{
			{
				ProductName:       old.ProductionName,
				Type:              entity.MovementTypeOut,
				Quantity:          old.OutputQuantity,
				Unit:              domaininv.UnitForProduct(old.ProductionName),
				ReferenceID:       ref,
				SourceDestination: SourceAdjustment,
			},
			{
				ProductName:       b.ProductionName,
				Type:              entity.MovementTypeIn,
				Quantity:          b.OutputQuantity,
				Unit:              domaininv.UnitForProduct(b.ProductionName),
				ReferenceID:       ref,
				SourceDestination: SourceAdjustment,
				Cost:              b.TotalCost,
			},
		}
	}

	diff := b.OutputQuantity.Sub(old.OutputQuantity)
	if diff.IsZero() {
		return nil
	}
	m := &entity.StockMovement{
		ProductName:       b.ProductionName,
		Quantity:          diff.Abs(),
		Unit:              domaininv.UnitForProduct(b.ProductionName),
		ReferenceID:       ref,
		SourceDestination: SourceAdjustment,
	}
	if diff.IsPositive() {
		m.Type = entity.MovementTypeIn
		m.Cost = diff.Mul(b.TotalCost).DivRound(b.OutputQuantity, domaininv.MoneyScale)
	} else {
		m.Type = entity.MovementTypeOut
	}
	return []*entity.StockMovement{m}
}

func reference(prefix string, id int64) string {
	return fmt.Sprintf("%s-%d", prefix, id)
}
