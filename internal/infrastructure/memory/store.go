// Package memory implementa los repositorios sobre estado en proceso. Se usa en desarrollo
// (STORAGE_DRIVER=memory) y en pruebas de casos de uso.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
)

type state struct {
	ledger         map[string]entity.LedgerEntry
	movements      map[int64]entity.StockMovement
	batches        map[int64]entity.ProductionBatch
	nextMovementID int64
	nextBatchID    int64
}

func newState() *state {
	return &state{
		ledger:    map[string]entity.LedgerEntry{},
		movements: map[int64]entity.StockMovement{},
		batches:   map[int64]entity.ProductionBatch{},
	}
}

func (s *state) clone() *state {
	return &state{
		ledger:         maps.Clone(s.ledger),
		movements:      maps.Clone(s.movements),
		batches:        maps.Clone(s.batches),
		nextMovementID: s.nextMovementID,
		nextBatchID:    s.nextBatchID,
	}
}

// Store guarda el estado y serializa las transacciones. Cada transacción trabaja sobre una copia
// que reemplaza al estado solo si fn termina sin error.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	movRepo repository.StockMovementRepository,
	productionRepo repository.ProductionRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.st.clone()
	a := access{st: work, now: s.now}
	if err := fn(&LedgerRepository{a}, &MovementRepository{a}, &ProductionRepository{a}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Ping siempre responde; existe para el endpoint de salud.
func (s *Store) Ping(context.Context) error { return nil }

// Ledger devuelve el repositorio del libro fuera de transacción.
func (s *Store) Ledger() *LedgerRepository { return &LedgerRepository{access{store: s, now: s.now}} }

// Movements devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepository { return &MovementRepository{access{store: s, now: s.now}} }

// Production devuelve el repositorio de lotes fuera de transacción.
func (s *Store) Production() *ProductionRepository {
	return &ProductionRepository{access{store: s, now: s.now}}
}

// access resuelve el estado a usar: el de la transacción en curso o el del Store bajo su lock.
type access struct {
	store *Store
	st    *state
	now   func() time.Time
}

func (a access) read(fn func(*state) error) error {
	if a.store == nil {
		return fn(a.st)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.st)
}

func (a access) write(fn func(*state) error) error {
	if a.store == nil {
		return fn(a.st)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	work := a.store.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	a.store.st = work
	return nil
}
