package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

// ProductionRepository implementa repository.ProductionRepository en memoria.
type ProductionRepository struct {
	a access
}

func (r *ProductionRepository) Create(_ context.Context, b *entity.ProductionBatch) error {
	return r.a.write(func(st *state) error {
		st.nextBatchID++
		now := r.a.now()
		b.ID = st.nextBatchID
		b.CreatedAt = now
		b.UpdatedAt = now
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *ProductionRepository) GetByID(_ context.Context, id int64) (*entity.ProductionBatch, error) {
	var out *entity.ProductionBatch
	err := r.a.read(func(st *state) error {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *ProductionRepository) GetForUpdate(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductionRepository) Update(_ context.Context, b *entity.ProductionBatch) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.batches[b.ID]; !ok {
			return domain.NotFound("lote", b.ID)
		}
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *ProductionRepository) Delete(_ context.Context, id int64) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.batches[id]; !ok {
			return domain.NotFound("lote", id)
		}
		delete(st.batches, id)
		return nil
	})
}

// List ordena por fecha de producción descendente.
func (r *ProductionRepository) List(context.Context) ([]*entity.ProductionBatch, error) {
	var out []*entity.ProductionBatch
	err := r.a.read(func(st *state) error {
		out = make([]*entity.ProductionBatch, 0, len(st.batches))
		for _, b := range st.batches {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ProductionDate.Equal(out[j].ProductionDate) {
			return out[i].ProductionDate.After(out[j].ProductionDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func (r *ProductionRepository) Stats(_ context.Context, monthStart time.Time) (repository.ProductionStats, error) {
	var s repository.ProductionStats
	var effSum int64
	err := r.a.read(func(st *state) error {
		for _, b := range st.batches {
			s.TotalBatches++
			if !b.ProductionDate.Before(monthStart) {
				s.MonthlyBatches++
			}
			s.TotalCost = s.TotalCost.Add(b.TotalCost)
			effSum += int64(b.Efficiency)
		}
		return nil
	})
	if s.TotalBatches > 0 {
		s.AvgEfficiency = decimal.NewFromInt(effSum).Div(decimal.NewFromInt(s.TotalBatches))
	}
	return s, err
}
