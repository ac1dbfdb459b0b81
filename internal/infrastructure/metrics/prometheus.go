// Package metrics exporta contadores del motor de existencias y del servidor HTTP en formato Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ghulammujtaba153/Dairy/internal/application/inventory"
)

var _ inventory.Metrics = (*Registry)(nil)

// Registry agrupa las métricas de la aplicación en un registro propio (no el global).
type Registry struct {
	registry         *prometheus.Registry
	movementsApplied *prometheus.CounterVec
	txFailures       *prometheus.CounterVec
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New crea el registro con las métricas de proceso y runtime de Go.
func New(namespace string) *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		movementsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_movements_applied_total",
			Help:      "Movimientos aplicados al libro por operación y tipo.",
		}, []string{"op", "type"}),
		txFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_transactions_failed_total",
			Help:      "Transacciones del libro revertidas por operación.",
		}, []string{"op"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.movementsApplied,
		r.txFailures,
		r.requestsTotal,
		r.requestDuration,
	)
	return r
}

func (r *Registry) MovementApplied(op, movementType string) {
	r.movementsApplied.WithLabelValues(op, movementType).Inc()
}

func (r *Registry) TransactionFailed(op string) {
	r.txFailures.WithLabelValues(op).Inc()
}

// ObserveRequest registra una petición HTTP terminada. route es el patrón, no la URL.
func (r *Registry) ObserveRequest(method, route, status string, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(method, route, status).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato de texto de Prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
