package capacity

import "github.com/prometheus/client_golang/prometheus"

// VecCounter adapts a labelled prometheus counter to the ledger's outcome counter.
type VecCounter struct {
	Vec *prometheus.CounterVec
}

// Inc increments the op/outcome series.
func (c VecCounter) Inc(op, outcome string) {
	if c.Vec == nil {
		return
	}
	c.Vec.WithLabelValues(op, outcome).Inc()
}
