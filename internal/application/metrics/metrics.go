package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the application module.
// Tracks submissions and each reason an application is turned away.
type Metrics struct {
	Submissions prometheus.Counter
	Rejections  *prometheus.CounterVec
}

// New creates a new Metrics instance with all application module metrics registered.
func New() *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrigate_applications_submitted_total",
			Help: "Total number of scheme applications accepted",
		}),
		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agrigate_applications_rejected_total",
			Help: "Total number of scheme applications turned away, by reason",
		}, []string{"reason"}),
	}
}

// IncrementSubmissions records an accepted application.
func (m *Metrics) IncrementSubmissions() {
	m.Submissions.Inc()
}

// IncrementRejections records a turned-away application with its reason
// (ineligible, duplicate, not_found).
func (m *Metrics) IncrementRejections(reason string) {
	m.Rejections.WithLabelValues(reason).Inc()
}
