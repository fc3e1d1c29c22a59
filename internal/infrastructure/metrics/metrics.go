package metrics

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/conta/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	reg prometheus.Registerer

	// Entry metrics
	EntriesAccepted *prometheus.CounterVec
	EntriesRejected *prometheus.CounterVec
	EntryIssues     *prometheus.CounterVec

	// Posting metrics
	PostingAnomalies *prometheus.CounterVec

	// Report metrics
	ReportDuration *prometheus.HistogramVec

	// Account metrics
	AccountOperations *prometheus.CounterVec
}

// New creates all metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,

		EntriesAccepted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conta_entries_accepted_total",
				Help: "Total number of journal entries accepted",
			},
			[]string{"operation"},
		),
		EntriesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conta_entries_rejected_total",
				Help: "Total number of journal entries rejected by validation",
			},
			[]string{"reason"},
		),
		EntryIssues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conta_entry_issues_total",
				Help: "Validation issues found in rejected entries",
			},
			[]string{"kind"},
		),

		PostingAnomalies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conta_posting_anomalies_total",
				Help: "Lines posted with a warning",
			},
			[]string{"kind"},
		),

		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "conta_report_duration_seconds",
				Help:    "Duration of report computations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),

		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conta_account_operations_total",
				Help: "Chart of accounts changes",
			},
			[]string{"operation"},
		),
	}
}

// EntryAccepted counts a stored entry.
func (m *Metrics) EntryAccepted(operation string) {
	m.EntriesAccepted.WithLabelValues(operation).Inc()
}

// EntryRejected counts a rejected entry once, labelled by its first issue,
// and every issue by kind.
func (m *Metrics) EntryRejected(kinds []domain.IssueKind) {
	reason := "unknown"
	if len(kinds) > 0 {
		reason = string(kinds[0])
	}
	m.EntriesRejected.WithLabelValues(reason).Inc()

	for _, k := range kinds {
		m.EntryIssues.WithLabelValues(string(k)).Inc()
	}
}

// PostingWarnings counts posting anomalies by kind.
func (m *Metrics) PostingWarnings(warnings []domain.PostingWarning) {
	for _, w := range warnings {
		m.PostingAnomalies.WithLabelValues(string(w.Kind)).Inc()
	}
}

// ObserveReport records how long a report took.
func (m *Metrics) ObserveReport(report string, elapsed time.Duration) {
	m.ReportDuration.WithLabelValues(report).Observe(elapsed.Seconds())
}

// AccountOperation counts a catalog change.
func (m *Metrics) AccountOperation(operation string) {
	m.AccountOperations.WithLabelValues(operation).Inc()
}

// RegisterPool exports connection pool gauges.
func (m *Metrics) RegisterPool(pool *pgxpool.Pool) {
	factory := promauto.With(m.reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "conta_db_connections_total",
		Help: "Connections currently held by the pool",
	}, func() float64 { return float64(pool.Stat().TotalConns()) })

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "conta_db_connections_idle",
		Help: "Idle connections in the pool",
	}, func() float64 { return float64(pool.Stat().IdleConns()) })

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "conta_db_connections_acquired",
		Help: "Connections currently in use",
	}, func() float64 { return float64(pool.Stat().AcquiredConns()) })
}
