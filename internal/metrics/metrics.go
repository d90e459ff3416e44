package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Created    prometheus.Counter
	Resolved   prometheus.Counter
	Collisions prometheus.Counter
	Mappings   prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Created: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortener_created_total",
			Help: "Short codes created.",
		}),
		Resolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortener_resolved_total",
			Help: "Short codes resolved to their original URL.",
		}),
		Collisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortener_code_collisions_total",
			Help: "Generated short codes that were already taken.",
		}),
		Mappings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shortener_mappings",
			Help: "Stored URL mappings.",
		}),
	}
}

func (m *Metrics) Create() {
	m.Created.Inc()
}

func (m *Metrics) Resolve() {
	m.Resolved.Inc()
}

func (m *Metrics) Collision() {
	m.Collisions.Inc()
}

func (m *Metrics) SetMappings(n int64) {
	m.Mappings.Set(float64(n))
}
