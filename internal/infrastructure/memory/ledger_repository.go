package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
)

// LedgerRepository implementa repository.LedgerRepository en memoria.
type LedgerRepository struct {
	a access
}

// GetForUpdate devuelve la entrada o nil. El bloqueo es el de la transacción completa.
func (r *LedgerRepository) GetForUpdate(ctx context.Context, productName string) (*entity.LedgerEntry, error) {
	return r.GetByName(ctx, productName)
}

func (r *LedgerRepository) GetOrCreateForUpdate(_ context.Context, productName, seedUnit string) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.a.write(func(st *state) error {
		e, ok := st.ledger[productName]
		if !ok {
			now := r.a.now()
			e = entity.LedgerEntry{
				ID:          uuid.NewString(),
				ProductName: productName,
				Unit:        seedUnit,
				Version:     1,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			st.ledger[productName] = e
		}
		out = &e
		return nil
	})
	return out, err
}

// LockMany no hace nada: la transacción en memoria ya es exclusiva.
func (r *LedgerRepository) LockMany(context.Context, []string) error { return nil }

func (r *LedgerRepository) ApplyDelta(_ context.Context, productName string, delta inventory.Delta) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.a.write(func(st *state) error {
		e, ok := st.ledger[productName]
		if !ok {
			return fmt.Errorf("aplicar delta a %q: %w", productName, domain.ErrLedgerInconsistent)
		}
		e = delta.ApplyTo(e)
		e.Version++
		e.UpdatedAt = r.a.now()
		st.ledger[productName] = e
		out = &e
		return nil
	})
	return out, err
}

func (r *LedgerRepository) SetMinStockLevel(_ context.Context, productName string, level decimal.Decimal) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.a.write(func(st *state) error {
		e, ok := st.ledger[productName]
		if !ok {
			return nil
		}
		e.MinStockLevel = level
		e.Version++
		e.UpdatedAt = r.a.now()
		st.ledger[productName] = e
		out = &e
		return nil
	})
	return out, err
}

func (r *LedgerRepository) GetByName(_ context.Context, productName string) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.a.read(func(st *state) error {
		if e, ok := st.ledger[productName]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

// List devuelve las entradas ordenadas por nombre.
func (r *LedgerRepository) List(context.Context) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	err := r.a.read(func(st *state) error {
		out = make([]*entity.LedgerEntry, 0, len(st.ledger))
		for _, e := range st.ledger {
			e := e
			out = append(out, &e)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, err
}
