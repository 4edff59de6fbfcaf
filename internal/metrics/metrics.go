package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command results.
const (
	ResultOK        = "ok"
	ResultDenied    = "denied"
	ResultThrottled = "throttled"
	ResultRejected  = "rejected"
	ResultExpired   = "expired"
)

// Metrics provides observability for the tribunal workflows.
// All methods are safe on a nil receiver.
type Metrics struct {
	Registry *prometheus.Registry

	// Slash command invocations by command and result
	Commands *prometheus.CounterVec

	// Form submissions by form and result
	Submissions *prometheus.CounterVec

	// Decision control outcomes: approved, denied, postponed
	Rulings *prometheus.CounterVec

	// Presses on resolved or expired decision controls
	IgnoredPresses prometheus.Counter

	// Live forms and controls dropped by the expiry sweep
	Expired *prometheus.CounterVec
}

// New creates a Metrics instance registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tjporte_commands_total",
			Help: "Slash command invocations by command and result",
		}, []string{"command", "result"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tjporte_form_submissions_total",
			Help: "Form submissions by form and result",
		}, []string{"form", "result"}),
		Rulings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tjporte_rulings_total",
			Help: "Decision control outcomes",
		}, []string{"outcome"}),
		IgnoredPresses: factory.NewCounter(prometheus.CounterOpts{
			Name: "tjporte_decision_presses_ignored_total",
			Help: "Presses on decision controls that were already resolved or expired",
		}),
		Expired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tjporte_pending_expired_total",
			Help: "Open forms and decision controls dropped after their timeout",
		}, []string{"kind"}),
	}
}

// IncrementCommand records a command invocation.
func (m *Metrics) IncrementCommand(command, result string) {
	if m != nil {
		m.Commands.WithLabelValues(command, result).Inc()
	}
}

// IncrementSubmission records a form submission.
func (m *Metrics) IncrementSubmission(form, result string) {
	if m != nil {
		m.Submissions.WithLabelValues(form, result).Inc()
	}
}

// IncrementRuling records a decision control outcome.
func (m *Metrics) IncrementRuling(outcome string) {
	if m != nil {
		m.Rulings.WithLabelValues(outcome).Inc()
	}
}

// IncrementIgnoredPress records a press that had no effect.
func (m *Metrics) IncrementIgnoredPress() {
	if m != nil {
		m.IgnoredPresses.Inc()
	}
}

// AddExpired records n expired entries of kind.
func (m *Metrics) AddExpired(kind string, n int) {
	if m != nil && n > 0 {
		m.Expired.WithLabelValues(kind).Add(float64(n))
	}
}
