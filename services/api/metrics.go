package api

import "github.com/prometheus/client_golang/prometheus"

type fixtureMetrics struct {
	generated *prometheus.CounterVec
}

func newFixtureMetrics(reg prometheus.Registerer, namespace string) *fixtureMetrics {
	m := &fixtureMetrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixtures_generated_total",
			Help:      "Fixtures generated for responses, by entity.",
		}, []string{"entity"}),
	}
	reg.MustRegister(m.generated)
	return m
}

func (m *fixtureMetrics) add(entity string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.generated.WithLabelValues(entity).Add(float64(n))
}
