package bench

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors the runner updates while building a tree.
type Metrics struct {
	InsertCount prometheus.Counter
	TreeSize    prometheus.Gauge
	BlackHeight prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		InsertCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rbmerkle_insert_count",
			Help: "Number of keys inserted into the tree.",
		}),
		TreeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rbmerkle_tree_size",
			Help: "Number of nodes in the tree.",
		}),
		BlackHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rbmerkle_black_height",
			Help: "Black-height of the tree.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.InsertCount, m.TreeSize, m.BlackHeight)
	}
	return m
}
