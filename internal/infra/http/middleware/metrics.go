package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_transitions_total",
			Help: "Total number of lead status transitions",
		},
		[]string{"from", "to"},
	)

	dealsWonTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deals_won_total",
			Help: "Total number of deals closed as won",
		},
	)

	formSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of public form submissions",
		},
		[]string{"kind"},
	)

	fallbackWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_writes_total",
			Help: "Total number of writes diverted to the local fallback store",
		},
		[]string{"family"},
	)

	localRecordsPending = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "local_records_pending",
			Help: "Records sitting in the local fallback store awaiting manual replay",
		},
		[]string{"family"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordTransition(from, to string) {
	leadTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordDealWon() {
	dealsWonTotal.Inc()
}

func RecordFormSubmission(kind string) {
	formSubmissionsTotal.WithLabelValues(kind).Inc()
}

func RecordFallbackWrite(family string) {
	fallbackWritesTotal.WithLabelValues(family).Inc()
}

func SetLocalRecordsPending(family string, n int) {
	localRecordsPending.WithLabelValues(family).Set(float64(n))
}
