package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Contadores(t *testing.T) {
	r := New("dairy")

	r.MovementApplied("record", "in")
	r.MovementApplied("record", "in")
	r.TransactionFailed("update")
	r.ObserveRequest("POST", "/api/inventory/movement", "201", 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.movementsApplied.WithLabelValues("record", "in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.txFailures.WithLabelValues("update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("POST", "/api/inventory/movement", "201")))
}

func TestRegistry_Handler(t *testing.T) {
	r := New("dairy")
	r.MovementApplied("delete", "out")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dairy_ledger_movements_applied_total{op="delete",type="out"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
