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

	emailsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_ingested_total",
			Help: "Total number of inbound emails ingested",
		},
		[]string{"direction", "matched"},
	)

	matchHeuristicHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_heuristic_hits_total",
			Help: "Matcher waterfall hits by heuristic",
		},
		[]string{"heuristic"},
	)

	stageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stage_transitions_total",
			Help: "Total number of pipeline stage transitions",
		},
		[]string{"stage"},
	)

	starToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "star_toggles_total",
			Help: "Total number of star toggles",
		},
		[]string{"kind"},
	)

	migrationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_runs_total",
			Help: "Local-to-remote migration runs by outcome",
		},
		[]string{"outcome"},
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

func RecordEmailIngested(direction string, matched bool) {
	if direction == "" {
		direction = "received"
	}
	emailsIngested.WithLabelValues(direction, strconv.FormatBool(matched)).Inc()
}

func RecordMatchHeuristic(heuristic string) {
	matchHeuristicHits.WithLabelValues(heuristic).Inc()
}

func RecordStageTransition(stage string) {
	stageTransitions.WithLabelValues(stage).Inc()
}

func RecordStarToggle(kind string) {
	starToggles.WithLabelValues(kind).Inc()
}

func RecordMigrationRun(outcome string) {
	migrationRuns.WithLabelValues(outcome).Inc()
}
