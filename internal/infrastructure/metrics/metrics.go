package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Run metrics
	RunsCompleted  *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	AccountsPerRun prometheus.Histogram

	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionsSkipped   *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Statement fetch metrics
	FetchAttempts prometheus.Counter
	FetchFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Run metrics
		RunsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txhandler_runs_total",
				Help: "Total number of statement runs by outcome",
			},
			[]string{"outcome"},
		),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "txhandler_run_duration_seconds",
			Help:    "Duration of statement runs",
			Buckets: prometheus.DefBuckets,
		}),
		AccountsPerRun: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "txhandler_accounts_per_run",
			Help:    "Number of client accounts touched per run",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),

		// Transaction metrics
		TransactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txhandler_transactions_processed_total",
				Help: "Total transactions applied by action",
			},
			[]string{"action"},
		),
		TransactionsSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txhandler_transactions_skipped_total",
				Help: "Total transactions skipped by reason",
			},
			[]string{"reason"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txhandler_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txhandler_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Statement fetch metrics
		FetchAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "txhandler_fetch_attempts_total",
			Help: "Total remote statement fetch attempts",
		}),
		FetchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "txhandler_fetch_failures_total",
			Help: "Total remote statement fetch attempts that failed",
		}),
	}
}
