package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "observatory_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "observatory_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PipelineRunsTotal counts pipeline runs by outcome.
	PipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "observatory_pipeline_runs_total",
		Help: "Total number of classification pipeline runs by outcome",
	}, []string{"outcome"})

	// PipelineRunDuration records end-to-end pipeline run duration.
	PipelineRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "observatory_pipeline_run_duration_seconds",
		Help:    "Classification pipeline run duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	// AuthorsAnalyzed counts authors processed per analyzer and quality tier.
	AuthorsAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "observatory_authors_analyzed_total",
		Help: "Authors processed, by analyzer and result quality",
	}, []string{"analyzer", "quality"})

	// VerdictCounts is the gauge of the latest run's verdict distribution.
	VerdictCounts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "observatory_verdict_count",
		Help: "Number of accounts per verdict in the latest run",
	}, []string{"verdict"})

	// AnalyzerDuration records per-analyzer wall time across a run.
	AnalyzerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "observatory_analyzer_duration_seconds",
		Help:    "Per-author analyzer duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"analyzer"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// TrackAnalyzer returns a function that records analyzer duration when called.
func TrackAnalyzer(analyzer string) func() {
	start := time.Now()
	return func() {
		AnalyzerDuration.WithLabelValues(analyzer).Observe(time.Since(start).Seconds())
	}
}
