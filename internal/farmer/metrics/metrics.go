package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the farmer module.
// Tracks registrations, login outcomes, and login latency.
type Metrics struct {
	Registrations prometheus.Counter
	LoginFailures prometheus.Counter
	LoginDuration prometheus.Histogram
}

// New creates a new Metrics instance with all farmer module metrics registered.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrigate_farmers_registered_total",
			Help: "Total number of farmers registered",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrigate_login_failures_total",
			Help: "Total number of failed login attempts",
		}),
		LoginDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "agrigate_login_duration_seconds",
			Help:    "Duration of login operations (includes bcrypt verification)",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementRegistrations records a successful registration.
func (m *Metrics) IncrementRegistrations() {
	m.Registrations.Inc()
}

// IncrementLoginFailures records a rejected login attempt.
func (m *Metrics) IncrementLoginFailures() {
	m.LoginFailures.Inc()
}

// ObserveLogin records the duration of a login operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLogin(start time.Time) {
	m.LoginDuration.Observe(time.Since(start).Seconds())
}
