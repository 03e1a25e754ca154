// Package metrics exposes Prometheus instrumentation for lakepath: HTTP
// request counts and latencies, storage call outcomes, path resolution
// outcomes and rejected filters.
//
// A nil *Metrics is valid and records nothing, so callers never need to
// branch on whether metrics are enabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sagarc03/lakepath"
)

// Metrics holds every lakepath collector registered on one registry.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	storageCalls    *prometheus.CounterVec
	storageDuration *prometheus.HistogramVec
	resolutions     *prometheus.CounterVec
	invalidFilters  prometheus.Counter
}

var _ lakepath.Observer = (*Metrics)(nil)

// New registers the lakepath collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lakepath_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "lakepath_http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
				Buckets: []float64{
					0.01, // exact hits on a local backend
					0.05,
					0.1,
					0.5, // case-insensitive walks
					1,
					5, // large recursive listings
					15,
					60,
				},
			},
			[]string{"route"},
		),
		storageCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lakepath_storage_calls_total",
				Help: "Total number of storage backend calls by operation and result",
			},
			[]string{"op", "result"},
		),
		storageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lakepath_storage_call_duration_seconds",
				Help:    "Duration of storage backend calls in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"op"},
		),
		resolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lakepath_resolutions_total",
				Help: "Total number of path resolutions by target kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		invalidFilters: f.NewCounter(
			prometheus.CounterOpts{
				Name: "lakepath_invalid_filters_total",
				Help: "Total number of rejected item filters",
			},
		),
	}
}

// ObserveResolution records the outcome of one path resolution.
func (m *Metrics) ObserveResolution(kind lakepath.PathKind, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(kind.String(), outcome).Inc()
}

// ObserveInvalidFilters records n rejected filters.
func (m *Metrics) ObserveInvalidFilters(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.invalidFilters.Add(float64(n))
}

func (m *Metrics) observeStorageCall(op string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storageCalls.WithLabelValues(op, result).Inc()
	m.storageDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and durations labelled by the chi route
// pattern, so path parameters do not inflate label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(started).Seconds())
	})
}
