package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters exported on /metrics.
type Metrics struct {
	searches       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	pulseRequests  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ticker_search",
			Name:      "searches_total",
			Help:      `Search requests by tier of the top candidate, "none" when nothing matched.`,
		}, []string{"tier"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ticker_search",
			Name:      "search_duration_seconds",
			Help:      "Time spent ranking candidates.",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		}),
		pulseRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ticker_search",
			Name:      "pulse_requests_total",
			Help:      "Market pulse proxy requests by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.searches, m.searchDuration, m.pulseRequests)
	return m
}
