package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bot.
type Metrics struct {
	RoleMutations        *prometheus.CounterVec
	ReconcileRuns        *prometheus.CounterVec
	ReconcileLines       *prometheus.CounterVec
	ReconcileDuration    prometheus.Histogram
	ScreeningTransitions *prometheus.CounterVec
	RulesPublished       *prometheus.CounterVec
	CommandsHandled      *prometheus.CounterVec
	BulkLockRejected     prometheus.Counter
}

// New creates and registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RoleMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_role_mutations_total",
			Help: "Role add/remove requests sent to the platform, by operation and outcome",
		}, []string{"operation", "outcome"}),
		ReconcileRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_reconcile_runs_total",
			Help: "Bulk role reconciliation passes, by result",
		}, []string{"result"}),
		ReconcileLines: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_reconcile_lines_total",
			Help: "Identity lines processed by reconciliation, by resolution",
		}, []string{"resolution"}),
		ReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "warden_reconcile_duration_seconds",
			Help:    "Wall time of a full reconciliation pass",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		ScreeningTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_screening_transitions_total",
			Help: "Member screening completions handled, by result",
		}, []string{"result"}),
		RulesPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_rules_published_total",
			Help: "Rules publication attempts, by mode and result",
		}, []string{"mode", "result"}),
		CommandsHandled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_commands_handled_total",
			Help: "Chat commands handled, by command and result",
		}, []string{"command", "result"}),
		BulkLockRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "warden_bulk_lock_rejected_total",
			Help: "Bulk operations rejected because another one was running for the guild",
		}),
	}
}

// IncRoleMutation records one role mutation request.
func (m *Metrics) IncRoleMutation(operation, outcome string) {
	m.RoleMutations.WithLabelValues(operation, outcome).Inc()
}

// ObserveReconcile records a finished pass.
func (m *Metrics) ObserveReconcile(result string, matched, unmatched int, took time.Duration) {
	m.ReconcileRuns.WithLabelValues(result).Inc()
	m.ReconcileLines.WithLabelValues("matched").Add(float64(matched))
	m.ReconcileLines.WithLabelValues("unmatched").Add(float64(unmatched))
	m.ReconcileDuration.Observe(took.Seconds())
}

// IncScreening records a screening gate outcome.
func (m *Metrics) IncScreening(result string) {
	m.ScreeningTransitions.WithLabelValues(result).Inc()
}

// IncRulesPublished records a rules publication attempt.
func (m *Metrics) IncRulesPublished(mode, result string) {
	m.RulesPublished.WithLabelValues(mode, result).Inc()
}

// IncCommand records a handled chat command.
func (m *Metrics) IncCommand(command, result string) {
	m.CommandsHandled.WithLabelValues(command, result).Inc()
}

// IncBulkLockRejected records a bulk operation refused by the guild lock.
func (m *Metrics) IncBulkLockRejected() {
	m.BulkLockRejected.Inc()
}
