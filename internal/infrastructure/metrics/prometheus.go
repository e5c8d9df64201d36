package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusObserver métricas de alquileres, búsquedas y HTTP sobre un registro propio
// (no el global, para poder instanciarlo varias veces en tests).
type PrometheusObserver struct {
	registry *prometheus.Registry

	allocations       *prometheus.CounterVec
	allocationTries   prometheus.Histogram
	allocationLatency *prometheus.HistogramVec
	searches          *prometheus.CounterVec
	searchResults     *prometheus.HistogramVec
	searchLatency     *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

// NewPrometheusObserver registra los colectores bajo el namespace "videoclub".
func NewPrometheusObserver() *PrometheusObserver {
	o := &PrometheusObserver{
		registry: prometheus.NewRegistry(),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videoclub",
			Name:      "rental_allocations_total",
			Help:      "Intentos de alquiler por resultado (ok, not_found, conflict, internal).",
		}, []string{"outcome"}),
		allocationTries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "videoclub",
			Name:      "rental_allocation_attempts",
			Help:      "Transacciones ejecutadas por alquiler (reintentos incluidos).",
			Buckets:   []float64{1, 2, 3, 5, 8},
		}),
		allocationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "videoclub",
			Name:      "rental_allocation_duration_seconds",
			Help:      "Duración de Allocate.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videoclub",
			Name:      "searches_total",
			Help:      "Búsquedas por tipo.",
		}, []string{"kind"}),
		searchResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "videoclub",
			Name:      "search_results",
			Help:      "Filas devueltas por búsqueda.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}, []string{"kind"}),
		searchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "videoclub",
			Name:      "search_duration_seconds",
			Help:      "Duración de las búsquedas.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videoclub",
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "videoclub",
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	o.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		o.allocations,
		o.allocationTries,
		o.allocationLatency,
		o.searches,
		o.searchResults,
		o.searchLatency,
		o.httpRequests,
		o.httpLatency,
	)
	return o
}

// ObserveAllocation implementa rental.Observer.
func (o *PrometheusObserver) ObserveAllocation(outcome string, attempts int, elapsed time.Duration) {
	o.allocations.WithLabelValues(outcome).Inc()
	o.allocationTries.Observe(float64(attempts))
	o.allocationLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveSearch implementa usecase.SearchObserver.
func (o *PrometheusObserver) ObserveSearch(kind string, results int, elapsed time.Duration) {
	o.searches.WithLabelValues(kind).Inc()
	o.searchResults.WithLabelValues(kind).Observe(float64(results))
	o.searchLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveHTTP registra una petición; route es la plantilla (/api/rentals/:id/return), no la URL.
func (o *PrometheusObserver) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	o.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	o.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry expone el registro (tests, colectores adicionales).
func (o *PrometheusObserver) Registry() *prometheus.Registry {
	return o.registry
}

// Handler sirve /metrics en formato de exposición de Prometheus.
func (o *PrometheusObserver) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{Registry: o.registry})
}
