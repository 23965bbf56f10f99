package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Colectores Prometheus de la aplicación. Se registran en el registry por
// defecto; el handler /metrics los expone.
var (
	// HTTPRequestsTotal requests por método, ruta y código de respuesta.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taller_http_requests_total",
		Help: "Total de requests HTTP procesados.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration latencia por método y ruta.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taller_http_request_duration_seconds",
		Help:    "Duración de los requests HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// SalesCreatedTotal ventas creadas, por tipo.
	SalesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taller_sales_created_total",
		Help: "Ventas creadas exitosamente.",
	}, []string{"kind"})

	// StockConflictRetries reintentos por conflicto de escritura de stock.
	StockConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taller_stock_conflict_retries_total",
		Help: "Reintentos de ajuste de stock por conflicto de escritura.",
	})

	// PartialFailuresTotal fallos parciales (cobro hecho, transacción caída).
	PartialFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taller_partial_failures_total",
		Help: "Operaciones con cobro aplicado cuya transacción no completó.",
	})
)
