package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	SettleUps        *prometheus.CounterVec
	SettleUpAmount   prometheus.Histogram
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	LedgerErrors     *prometheus.CounterVec

	// Party metrics
	PartiesCreated *prometheus.CounterVec
	PartiesDeleted prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns  prometheus.Counter
	ReconciliationDrift prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBConnections prometheus.Gauge

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all Prometheus metrics and registers them with the given
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SettleUps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookledger_settle_ups_total",
				Help: "Total number of settle-up operations by role and entry type",
			},
			[]string{"role", "type"},
		),
		SettleUpAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookledger_settle_up_amount",
			Help:    "Settle-up amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookledger_transfers_created_total",
			Help: "Total number of balance transfers created",
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookledger_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		LedgerErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookledger_ledger_errors_total",
				Help: "Total number of ledger operation errors by type",
			},
			[]string{"error_type"},
		),

		PartiesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookledger_parties_created_total",
				Help: "Total number of parties created by role",
			},
			[]string{"role"},
		),
		PartiesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookledger_parties_deleted_total",
			Help: "Total number of parties deleted",
		}),

		ReconciliationRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookledger_reconciliation_runs_total",
			Help: "Total number of ledger consistency checks",
		}),
		ReconciliationDrift: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bookledger_reconciliation_drift",
			Help: "Number of parties whose stored balance disagrees with the ledger",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bookledger_db_connections",
			Help: "Current number of database connections",
		}),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookledger_cache_hits_total",
			Help: "Total party cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookledger_cache_misses_total",
			Help: "Total party cache misses",
		}),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
