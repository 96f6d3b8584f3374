// Package metrics exposes operation-level counters and a live-node gauge
// for a running nstree.Tree, following the rclone/prometheus pack's pattern
// of a small, explicitly-registered set of collectors rather than relying
// on the global default registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder implements nstree.Recorder and registers its collectors on the
// given prometheus.Registerer.
type Recorder struct {
	operations *prometheus.CounterVec
	nodes      prometheus.Gauge
}

// New creates a Recorder and registers its collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nstree_operations_total",
			Help: "Count of namespace operations by kind and result.",
		}, []string{"op", "result"}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nstree_nodes",
			Help: "Current number of live directory nodes in the namespace.",
		}),
	}
	reg.MustRegister(r.operations, r.nodes)
	return r
}

// ObserveOperation records the outcome of one Create/Remove/List/Move call.
func (r *Recorder) ObserveOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.operations.WithLabelValues(op, result).Inc()
}

// SetNodeCount updates the live-node gauge.
func (r *Recorder) SetNodeCount(n int) {
	r.nodes.Set(float64(n))
}
