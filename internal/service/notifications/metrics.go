package notifications

import "github.com/prometheus/client_golang/prometheus"

// VecCounter counts emitted notifications per type.
type VecCounter struct {
	Vec *prometheus.CounterVec
}

// Inc increments the series for the given type.
func (c VecCounter) Inc(notificationType string) {
	if c.Vec == nil {
		return
	}
	c.Vec.WithLabelValues(notificationType).Inc()
}
