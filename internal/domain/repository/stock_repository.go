package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
)

// LedgerRepository define el puerto del libro de existencias (una fila por producto).
// Los métodos *ForUpdate, LockMany y ApplyDelta deben usarse dentro de una transacción.
type LedgerRepository interface {
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, productName string) (*entity.LedgerEntry, error)
	// GetOrCreateForUpdate crea la fila en cero si falta y la devuelve bloqueada.
	GetOrCreateForUpdate(ctx context.Context, productName, seedUnit string) (*entity.LedgerEntry, error)
	// LockMany bloquea las filas existentes de varios productos en orden de nombre.
	LockMany(ctx context.Context, productNames []string) error
	// ApplyDelta suma el delta con un UPDATE atómico (campo = campo + Δ) y devuelve la fila resultante.
	ApplyDelta(ctx context.Context, productName string, delta inventory.Delta) (*entity.LedgerEntry, error)

	// SetMinStockLevel cambia el umbral de existencias bajas. Devuelve nil, nil si el producto no existe.
	SetMinStockLevel(ctx context.Context, productName string, level decimal.Decimal) (*entity.LedgerEntry, error)

	// GetByName devuelve nil, nil si el producto no existe.
	GetByName(ctx context.Context, productName string) (*entity.LedgerEntry, error)
	List(ctx context.Context) ([]*entity.LedgerEntry, error)
}
