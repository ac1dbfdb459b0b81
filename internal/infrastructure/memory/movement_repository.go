package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

// MovementRepository implementa repository.StockMovementRepository en memoria.
type MovementRepository struct {
	a access
}

func (r *MovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		st.nextMovementID++
		now := r.a.now()
		m.ID = st.nextMovementID
		if m.MovementDate.IsZero() {
			m.MovementDate = now
		}
		m.CreatedAt = now
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepository) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.a.read(func(st *state) error {
		if m, ok := st.movements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MovementRepository) GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepository) Update(_ context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.movements[m.ID]; !ok {
			return domain.NotFound("movimiento", m.ID)
		}
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepository) Delete(_ context.Context, id int64) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.movements[id]; !ok {
			return domain.NotFound("movimiento", id)
		}
		delete(st.movements, id)
		return nil
	})
}

// List ordena por fecha descendente y luego por id descendente.
func (r *MovementRepository) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements {
			if filter.ProductName != "" && m.ProductName != filter.ProductName {
				continue
			}
			m := m
			out = append(out, &m)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MovementDate.Equal(out[j].MovementDate) {
			return out[i].MovementDate.After(out[j].MovementDate)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, err
}

// DailyFlow suma entradas y salidas por día calendario desde since. Solo incluye días con movimientos.
func (r *MovementRepository) DailyFlow(_ context.Context, since time.Time) ([]repository.DailyFlow, error) {
	byDay := map[time.Time]*repository.DailyFlow{}
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements {
			if m.MovementDate.Before(since) {
				continue
			}
			y, mo, d := m.MovementDate.Date()
			day := time.Date(y, mo, d, 0, 0, 0, 0, m.MovementDate.Location())
			f, ok := byDay[day]
			if !ok {
				f = &repository.DailyFlow{Day: day}
				byDay[day] = f
			}
			switch m.Type {
			case entity.MovementTypeIn:
				f.Inflow = f.Inflow.Add(m.Quantity)
			case entity.MovementTypeOut:
				f.Outflow = f.Outflow.Add(m.Quantity)
			}
		}
		return nil
	})
	out := make([]repository.DailyFlow, 0, len(byDay))
	for _, f := range byDay {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, err
}
