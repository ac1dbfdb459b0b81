package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghulammujtaba153/Dairy/internal/domain"
	"github.com/ghulammujtaba153/Dairy/internal/domain/entity"
	"github.com/ghulammujtaba153/Dairy/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(onHand, market, costBasis string) entity.LedgerEntry {
	return entity.LedgerEntry{
		ProductName:    "Butter",
		OnHandQuantity: dec(onHand),
		MarketQuantity: dec(market),
		CostBasis:      dec(costBasis),
	}
}

func assertEntry(t *testing.T, e entity.LedgerEntry, onHand, market, costBasis string) {
	t.Helper()
	assert.True(t, e.OnHandQuantity.Equal(dec(onHand)), "en mano: esperado %s, obtenido %s", onHand, e.OnHandQuantity)
	assert.True(t, e.MarketQuantity.Equal(dec(market)), "mercado: esperado %s, obtenido %s", market, e.MarketQuantity)
	assert.True(t, e.CostBasis.Equal(dec(costBasis)), "base: esperado %s, obtenido %s", costBasis, e.CostBasis)
}

func TestEffect_In(t *testing.T) {
	m := entity.StockMovement{Type: entity.MovementTypeIn, Quantity: dec("40"), Cost: dec("300")}
	d, snapshot, err := inventory.Effect(entry("10", "0", "50"), m)
	require.NoError(t, err)

	assertEntry(t, d.ApplyTo(entry("10", "0", "50")), "50", "0", "350")
	assert.True(t, snapshot.Equal(dec("7.5")))
}

func TestEffect_OutUsaPromedioPonderado(t *testing.T) {
	m := entity.StockMovement{Type: entity.MovementTypeOut, Quantity: dec("20")}
	before := entry("100", "0", "500")

	d, snapshot, err := inventory.Effect(before, m)
	require.NoError(t, err)

	assert.True(t, snapshot.Equal(dec("5")))
	assertEntry(t, d.ApplyTo(before), "80", "0", "400")
}

func TestEffect_OutSinExistenciasNoExtraeCosto(t *testing.T) {
	m := entity.StockMovement{Type: entity.MovementTypeOut, Quantity: dec("30")}
	before := entry("0", "0", "0")

	d, snapshot, err := inventory.Effect(before, m)
	require.NoError(t, err)

	assert.True(t, snapshot.IsZero())
	assertEntry(t, d.ApplyTo(before), "-30", "0", "0")
}

func TestEffect_MarketEsPoolIndependiente(t *testing.T) {
	m := entity.StockMovement{Type: entity.MovementTypeMarket, Quantity: dec("30")}
	before := entry("100", "5", "500")

	d, _, err := inventory.Effect(before, m)
	require.NoError(t, err)

	assertEntry(t, d.ApplyTo(before), "100", "35", "500")
}

func TestEffect_TipoDesconocido(t *testing.T) {
	_, _, err := inventory.Effect(entry("1", "0", "1"), entity.StockMovement{Type: "transfer", Quantity: dec("1")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Aplicar y luego revertir deja la entrada exactamente igual, incluso con promedios periódicos (10/3).
func TestReversal_DeshaceExactamente(t *testing.T) {
	before := entry("3", "2", "10")
	for _, typ := range []string{entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeMarket} {
		t.Run(typ, func(t *testing.T) {
			m := entity.StockMovement{Type: typ, Quantity: dec("1.333"), Cost: dec("7.1234")}
			d, snapshot, err := inventory.Effect(before, m)
			require.NoError(t, err)
			m.UnitCostSnapshot = snapshot

			after := d.ApplyTo(before)

			rev, err := inventory.Reversal(m)
			require.NoError(t, err)
			restored := rev.ApplyTo(after)
			assertEntry(t, restored, "3", "2", "10")
		})
	}
}

func TestMovingAverageUnitCost_RedondeoFijo(t *testing.T) {
	assert.Equal(t, "3.333333", inventory.MovingAverageUnitCost(dec("10"), dec("3")).String())
	assert.True(t, inventory.MovingAverageUnitCost(dec("10"), dec("-1")).IsZero())
	assert.Equal(t, "4.4433", inventory.ExtractedCost(dec("1.333"), dec("3.333333")).String())
}

func TestUnitForProduct(t *testing.T) {
	assert.Equal(t, inventory.UnitLiters, inventory.UnitForProduct("Fresh MILK"))
	assert.Equal(t, inventory.UnitLiters, inventory.UnitForProduct("Sweet Lassi"))
	assert.Equal(t, inventory.UnitKilograms, inventory.UnitForProduct("Butter"))
	assert.Equal(t, inventory.UnitKilograms, inventory.UnitForProduct("Cheddar Cheese"))
}

func TestNormalizeProductName(t *testing.T) {
	assert.Equal(t, "Desi Ghee", inventory.NormalizeProductName("  Desi   Ghee "))
	// "è" precompuesto y descompuesto apuntan a la misma clave.
	assert.Equal(t, inventory.NormalizeProductName("Cr\u00e8me"), inventory.NormalizeProductName("Cre\u0300me"))
}
