// Package metrics provides Prometheus instrumentation for the loan engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SchedulesComputed counts computed schedules, partitioned by loan type.
	SchedulesComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loanengine_schedules_total",
		Help: "Total number of amortization schedules computed",
	}, []string{"loan_type"})

	// ScheduleMonths observes how many months each computed schedule ran.
	ScheduleMonths = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loanengine_schedule_months",
		Help:    "Length of computed schedules in months",
		Buckets: []float64{12, 36, 60, 120, 180, 240, 300, 360, 600, 1200},
	}, []string{"loan_type"})

	// BatchSize observes how many loans each multi-loan request carried.
	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loanengine_batch_size",
		Help:    "Number of loans per multi-loan request",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})

	// InvalidInputs counts requests rejected by input validation.
	InvalidInputs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loanengine_invalid_inputs_total",
		Help: "Requests rejected as invalid input",
	})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "loanengine_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loanengine_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loanengine_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Label with the chi route pattern, not the raw path: portfolio
		// IDs would otherwise make the label set unbounded.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
