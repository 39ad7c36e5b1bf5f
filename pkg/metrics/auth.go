package metrics

import "github.com/prometheus/client_golang/prometheus"

// Auth outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeLocked  = "locked"
)

type AuthMetrics struct {
	Attempts      *prometheus.CounterVec
	Lockouts      prometheus.Counter
	ResetRequests prometheus.Counter
	TokensIssued  *prometheus.CounterVec
}

func NewAuthMetrics(registry prometheus.Registerer) *AuthMetrics {
	m := &AuthMetrics{
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Authentication attempts by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		Lockouts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_account_lockouts_total",
				Help: "Accounts locked after repeated failures.",
			},
		),
		ResetRequests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_password_reset_requests_total",
				Help: "Password reset tokens issued.",
			},
		),
		TokensIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_tokens_issued_total",
				Help: "Signed tokens issued by kind.",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(m.Attempts, m.Lockouts, m.ResetRequests, m.TokensIssued)
	return m
}

func (m *AuthMetrics) Attempt(method, outcome string) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(method, outcome).Inc()
}

func (m *AuthMetrics) Locked() {
	if m == nil {
		return
	}
	m.Lockouts.Inc()
}

func (m *AuthMetrics) ResetRequested() {
	if m == nil {
		return
	}
	m.ResetRequests.Inc()
}

func (m *AuthMetrics) Issued(kind string) {
	if m == nil {
		return
	}
	m.TokensIssued.WithLabelValues(kind).Inc()
}
