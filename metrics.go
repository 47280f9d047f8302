package staking

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	fetchContract = "contract"
	fetchFallback = "fallback"
	fetchCached   = "cached"
)

// Metrics counts submissions and minimum stake lookups.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Fetches     *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stakingtodo",
			Name:      "submissions_total",
			Help:      "Todo submissions by terminal state.",
		}, []string{"state"}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stakingtodo",
			Name:      "minimum_stake_fetches_total",
			Help:      "Minimum stake lookups by source.",
		}, []string{"source"}),
	}
	if reg != nil {
		reg.MustRegister(m.Submissions, m.Fetches)
	}
	return m
}

func (m *Metrics) submission(s State) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) fetch(source string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(source).Inc()
}
