package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghulammujtaba153/Dairy/internal/application/dto"
	"github.com/ghulammujtaba153/Dairy/internal/application/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/application/production"
	"github.com/ghulammujtaba153/Dairy/internal/infrastructure/memory"
	apphttp "github.com/ghulammujtaba153/Dairy/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func newTestApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	engine := inventory.NewEngine(true)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop(), nil))
	app.Get("/health", apphttp.HealthHandler("dairy-ledger", store))
	apphttp.Router(app, apphttp.RouterDeps{
		Movements:     inventory.NewMovementUseCase(store, store.Ledger(), store.Movements(), engine, nil, zerolog.Nop(), 50),
		Replenishment: inventory.NewReplenishmentUseCase(store.Ledger()),
		Production:    production.NewUseCase(store, store.Production(), engine, nil, zerolog.Nop()),
		Log:           zerolog.Nop(),
		JWTSecret:     secret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), "respuesta no JSON: %s", raw)
	return resp, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func movement(product, typ string, qty, price float64) fiber.Map {
	return fiber.Map{
		"product_name":  product,
		"movement_type": typ,
		"quantity":      qty,
		"unit":          "kg",
		"price":         price,
	}
}

func assertDec(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(expected)), "esperado %s, obtenido %s", expected, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_CreaYActualizaExistencias(t *testing.T) {
	app := newTestApp(t, "")

	resp, env := call(t, app, http.MethodPost, "/api/inventory/movement", movement("Butter", "in", 100, 500))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	created := decode[dto.MovementResponse](t, env)
	assert.Positive(t, created.ID)
	assertDec(t, "500", created.Price)

	resp, env = call(t, app, http.MethodPost, "/api/inventory/movement", movement("Butter", "out", 20, 0))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decode[dto.MovementResponse](t, env)
	assertDec(t, "5", out.UnitCost)

	resp, env = call(t, app, http.MethodGet, "/api/inventory", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stock := decode[[]dto.StockResponse](t, env)
	require.Len(t, stock, 1)
	assertDec(t, "80", stock[0].InHandQuantity)
	assertDec(t, "400", stock[0].CostBasis)
	assertDec(t, "5", stock[0].UnitCost)
}

func TestRecordMovement_Validacion(t *testing.T) {
	app := newTestApp(t, "")

	cases := []struct {
		name  string
		body  any
		code  string
		field string
	}{
		{"tipo desconocido", movement("Butter", "transfer", 1, 0), "VALIDATION", "movement_type"},
		{"cantidad cero", movement("Butter", "in", 0, 0), "VALIDATION", "quantity"},
		{"precio negativo", movement("Butter", "in", 1, -5), "VALIDATION", "price"},
		{"sin producto", movement("", "in", 1, 0), "VALIDATION", "product_name"},
		{"cuerpo inválido", "{no-json", "INVALID_BODY", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := call(t, app, http.MethodPost, "/api/inventory/movement", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Code)
			assert.Contains(t, env.Error, tc.field)
		})
	}

	_, env := call(t, app, http.MethodGet, "/api/inventory", nil)
	assert.Empty(t, decode[[]dto.StockResponse](t, env), "un rechazo no debe crear entradas")
}

func TestUpdateYDeleteMovement(t *testing.T) {
	app := newTestApp(t, "")

	_, env := call(t, app, http.MethodPost, "/api/inventory/movement", movement("Cheese", "in", 10, 100))
	id := decode[dto.MovementResponse](t, env).ID

	resp, env := call(t, app, http.MethodPut, "/api/inventory/movement/"+itoa(id), movement("Cheese", "in", 15, 150))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decode[dto.MovementResponse](t, env)
	assert.Equal(t, id, updated.ID)
	assertDec(t, "15", updated.Quantity)

	resp, _ = call(t, app, http.MethodDelete, "/api/inventory/movement/"+itoa(id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, env = call(t, app, http.MethodGet, "/api/inventory", nil)
	stock := decode[[]dto.StockResponse](t, env)
	require.Len(t, stock, 1)
	assert.True(t, stock[0].InHandQuantity.IsZero())
	assert.True(t, stock[0].CostBasis.IsZero())

	resp, env = call(t, app, http.MethodDelete, "/api/inventory/movement/"+itoa(id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Code)

	resp, _ = call(t, app, http.MethodPut, "/api/inventory/movement/999", movement("Cheese", "in", 1, 1))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env = call(t, app, http.MethodGet, "/api/inventory/movements/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestGetMovements_FiltroYLimite(t *testing.T) {
	app := newTestApp(t, "")
	for i := 0; i < 3; i++ {
		call(t, app, http.MethodPost, "/api/inventory/movement", movement("Butter", "in", 1, 1))
	}
	call(t, app, http.MethodPost, "/api/inventory/movement", movement("Fresh Milk", "in", 1, 1))

	_, env := call(t, app, http.MethodGet, "/api/inventory/movements?product=Butter&limit=2", nil)
	movs := decode[[]dto.MovementResponse](t, env)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, "Butter", m.ProductName)
	}
	assert.Greater(t, movs[0].ID, movs[1].ID, "más recientes primero")

	resp, _ := call(t, app, http.MethodGet, "/api/inventory/movements?limit=-1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = call(t, app, http.MethodGet, "/api/inventory/movements/"+itoa(movs[0].ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, movs[0].ID, decode[dto.MovementResponse](t, env).ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStats(t *testing.T) {
	app := newTestApp(t, "")
	call(t, app, http.MethodPost, "/api/inventory/movement", movement("Butter", "in", 10, 60))
	call(t, app, http.MethodPost, "/api/inventory/movement", movement("Butter", "market", 4, 0))

	resp, env := call(t, app, http.MethodGet, "/api/inventory/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode[dto.InventoryStatsDTO](t, env)
	assertDec(t, "60", stats.InHandValue)
	assertDec(t, "24", stats.InMarketValue)
	assertDec(t, "84", stats.TotalValue)
	require.Len(t, stats.MovementData, 1, "solo días con movimientos")
	assertDec(t, "10", stats.MovementData[0].Inflow)
	assert.True(t, stats.MovementData[0].Outflow.IsZero(), "market no cuenta como salida")
}

func TestMinStockLevelYReposicion(t *testing.T) {
	app := newTestApp(t, "")
	call(t, app, http.MethodPost, "/api/inventory/movement", movement("Desi Ghee", "in", 10, 100))

	resp, env := call(t, app, http.MethodPut, "/api/inventory/stock/Desi%20Ghee/min-level", fiber.Map{"min_stock_level": 20})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	entry := decode[dto.StockResponse](t, env)
	assertDec(t, "20", entry.MinStockLevel)
	assert.True(t, entry.LowStock)

	_, env = call(t, app, http.MethodGet, "/api/inventory/replenishment", nil)
	list := decode[[]dto.ReplenishmentSuggestionDTO](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, "Desi Ghee", list[0].ProductName)
	assertDec(t, "30", list[0].IdealStock)
	assertDec(t, "20", list[0].SuggestedOrderQty)
	assertDec(t, "200", list[0].EstimatedOrderCost)
	assert.Equal(t, 1, list[0].Priority)

	resp, env = call(t, app, http.MethodGet, "/api/inventory/stock/Desi%20Ghee", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assertDec(t, "20", decode[dto.StockResponse](t, env).MinStockLevel)

	resp, _ = call(t, app, http.MethodGet, "/api/inventory/stock/Paneer", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env = call(t, app, http.MethodPut, "/api/inventory/stock/Paneer/min-level", fiber.Map{"min_stock_level": 5})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Code)

	resp, _ = call(t, app, http.MethodPut, "/api/inventory/stock/Desi%20Ghee/min-level", fiber.Map{"min_stock_level": -1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción
// ──────────────────────────────────────────────────────────────────────────────

func TestProduction_CicloCompleto(t *testing.T) {
	app := newTestApp(t, "")
	body := fiber.Map{
		"production_name":       "Butter",
		"production_date":       "2024-05-10",
		"raw_material_id":       1,
		"raw_material_quantity": 200,
		"production_output":     50,
		"efficiency":            90,
		"labour_cost":           600,
		"other_cost":            400,
	}

	resp, env := call(t, app, http.MethodPost, "/api/production", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	batch := decode[dto.ProductionResponse](t, env)
	assertDec(t, "1000", batch.TotalCost)
	assert.Equal(t, "2024-05-10", batch.ProductionDate)

	_, env = call(t, app, http.MethodGet, "/api/inventory/movements?product=Butter", nil)
	movs := decode[[]dto.MovementResponse](t, env)
	require.Len(t, movs, 1)
	assert.Equal(t, "BATCH-"+itoa(batch.ID), movs[0].ReferenceID)

	resp, env = call(t, app, http.MethodGet, "/api/production/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "/stats no debe resolverse como /:id")
	stats := decode[dto.ProductionStatsDTO](t, env)
	assert.Equal(t, int64(1), stats.TotalProduction)
	assert.Equal(t, int64(90), stats.AvgEfficiency)

	resp, env = call(t, app, http.MethodPut, "/api/production/"+itoa(batch.ID), fiber.Map{"production_output": 40})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assertDec(t, "40", decode[dto.ProductionResponse](t, env).ProductionOutput)

	resp, _ = call(t, app, http.MethodPut, "/api/production/"+itoa(batch.ID), fiber.Map{"efficiency": 150})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/production/"+itoa(batch.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/production/"+itoa(batch.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, env = call(t, app, http.MethodGet, "/api/inventory", nil)
	stock := decode[[]dto.StockResponse](t, env)
	require.Len(t, stock, 1)
	assert.True(t, stock[0].InHandQuantity.IsZero(), "borrar el lote retira su producción")
}

func TestProduction_FechaInvalida(t *testing.T) {
	app := newTestApp(t, "")
	resp, env := call(t, app, http.MethodPost, "/api/production", fiber.Map{
		"production_name":   "Butter",
		"production_date":   "10/05/2024",
		"raw_material_id":   1,
		"production_output": 5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error, "production_date")
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y request id
// ──────────────────────────────────────────────────────────────────────────────

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("conexión rechazada") }

func TestHealth(t *testing.T) {
	app := newTestApp(t, "")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))

	down := fiber.New()
	down.Get("/health", apphttp.HealthHandler("dairy-ledger", failingPinger{}))
	resp, err = down.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "disconnected", body["database"])
}

func TestRequestLogger_GeneraRequestID(t *testing.T) {
	app := newTestApp(t, "")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/inventory", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}
