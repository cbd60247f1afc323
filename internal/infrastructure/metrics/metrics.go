package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsApplied *prometheus.CounterVec
	TransactionAmount   *prometheus.HistogramVec
	TransactionErrors   *prometheus.CounterVec
	ApplyDuration       prometheus.Histogram
	UnknownTypes        prometheus.Counter

	// Customer metrics
	CustomersCreated *prometheus.CounterVec

	// Reminder metrics
	RemindersCreated   *prometheus.CounterVec
	RemindersCompleted prometheus.Counter

	// Aggregate metrics, refreshed whenever a summary is computed
	TotalReceivable prometheus.Gauge
	TotalPayable    prometheus.Gauge
	TodayExpense    prometheus.Gauge

	// Consistency metrics
	BalanceMismatches prometheus.Gauge
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		TransactionsApplied: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_transactions_applied_total",
				Help: "Total number of transactions recorded by type",
			},
			[]string{"type"},
		),
		TransactionAmount: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "khata_transaction_amount",
				Help:    "Transaction amounts by type",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		TransactionErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_transaction_errors_total",
				Help: "Total number of rejected or failed transactions by error type",
			},
			[]string{"error_type"},
		),
		ApplyDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "khata_apply_transaction_duration_seconds",
			Help:    "Duration of the append-and-adjust unit of work",
			Buckets: prometheus.DefBuckets,
		}),
		UnknownTypes: f.NewCounter(prometheus.CounterOpts{
			Name: "khata_transactions_unknown_type_total",
			Help: "Transactions recorded with a type that carries no balance effect",
		}),

		CustomersCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_customers_created_total",
				Help: "Total number of customers created by type",
			},
			[]string{"type"},
		),

		RemindersCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_reminders_created_total",
				Help: "Total number of reminders created by type",
			},
			[]string{"type"},
		),
		RemindersCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "khata_reminders_completed_total",
			Help: "Total number of reminders marked completed",
		}),

		TotalReceivable: f.NewGauge(prometheus.GaugeOpts{
			Name: "khata_total_receivable",
			Help: "Sum of positive customer balances at the last summary",
		}),
		TotalPayable: f.NewGauge(prometheus.GaugeOpts{
			Name: "khata_total_payable",
			Help: "Sum of absolute negative customer balances at the last summary",
		}),
		TodayExpense: f.NewGauge(prometheus.GaugeOpts{
			Name: "khata_today_expense",
			Help: "Expenses recorded for the current day at the last summary",
		}),

		BalanceMismatches: f.NewGauge(prometheus.GaugeOpts{
			Name: "khata_balance_mismatches",
			Help: "Customers whose balance disagreed with the transaction log at the last check",
		}),
	}
}
