package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the scheme module.
type Metrics struct {
	EligibilityQueries prometheus.Counter
	EligibleSchemes    prometheus.Histogram
}

// New creates a new Metrics instance with all scheme module metrics registered.
func New() *Metrics {
	return &Metrics{
		EligibilityQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrigate_eligibility_queries_total",
			Help: "Total number of eligibility listings served",
		}),
		EligibleSchemes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "agrigate_eligible_schemes_per_query",
			Help:    "Number of schemes matched per eligibility listing",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
	}
}

// ObserveEligibility records one eligibility listing and its match count.
func (m *Metrics) ObserveEligibility(matched int) {
	m.EligibilityQueries.Inc()
	m.EligibleSchemes.Observe(float64(matched))
}
