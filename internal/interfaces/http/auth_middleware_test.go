package http_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/ghulammujtaba153/Dairy/internal/interfaces/http"
	pkgjwt "github.com/ghulammujtaba153/Dairy/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "dairy-ledger-test"
	testExpMin    = 60
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// buildAuthApp monta AuthMiddleware delante de un handler que devuelve el usuario cargado.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func bearer(t *testing.T, secret string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido(t *testing.T) {
	resp := doProtected(t, buildAuthApp(), bearer(t, testJWTSecret))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"sin header", ""},
		{"sin prefijo Bearer", "Token abc"},
		{"token vacío", "Bearer   "},
		{"token basura", "Bearer not-a-jwt"},
		{"firmado con otro secreto", bearer(t, "otro-secreto")},
	}
	app := buildAuthApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doProtected(t, app, tc.header)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRouter_ApiProtegidaConSecreto(t *testing.T) {
	app := newTestApp(t, testJWTSecret)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/inventory", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.Header.Set("Authorization", bearer(t, testJWTSecret))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// /health queda fuera del grupo /api.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
