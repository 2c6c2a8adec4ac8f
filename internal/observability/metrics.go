package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shop24/shop24/internal/shared"
)

// Metrics collects the Prometheus metrics of a shop24 process.
type Metrics struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	operationsTotal  *prometheus.CounterVec
	quantityOrdered  *prometheus.GaugeVec
	snapshotRecorded prometheus.Gauge
}

// NewMetrics initialises a private registry with the base collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop24_http_requests_total",
		Help: "HTTP requests partitioned by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shop24_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop24_operations_total",
		Help: "Domain operations partitioned by entity, operation and outcome.",
	}, []string{"entity", "operation", "outcome"})
	quantity := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shop24_product_quantity_ordered",
		Help: "Total ordered quantity per product at the last snapshot.",
	}, []string{"product_id"})
	snapshot := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shop24_product_quantity_snapshot_timestamp_seconds",
		Help: "Unix time of the last product quantity snapshot.",
	})
	registry.MustRegister(requests, duration, operations, quantity, snapshot)
	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:    requests,
		requestDuration:  duration,
		operationsTotal:  operations,
		quantityOrdered:  quantity,
		snapshotRecorded: snapshot,
	}
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Registerer exposes the registry for additional collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// ObserveOperation counts a domain operation, classified by the kind of err.
func (m *Metrics) ObserveOperation(entity, operation string, err error) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(entity, operation, Outcome(err)).Inc()
}

// SetProductQuantities replaces the per-product quantity gauge with totals.
func (m *Metrics) SetProductQuantities(totals map[int64]int64, at time.Time) {
	if m == nil {
		return
	}
	m.quantityOrdered.Reset()
	for productID, qty := range totals {
		m.quantityOrdered.WithLabelValues(strconv.FormatInt(productID, 10)).Set(float64(qty))
	}
	m.snapshotRecorded.Set(float64(at.Unix()))
}

// Outcome names the error kind used as the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, shared.ErrValidation):
		return "validation"
	case errors.Is(err, shared.ErrReferentialIntegrity):
		return "referential_integrity"
	case errors.Is(err, shared.ErrNotFound):
		return "not_found"
	case errors.Is(err, shared.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
