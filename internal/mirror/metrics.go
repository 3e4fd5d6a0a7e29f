package mirror

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the mirror's prometheus collectors.
type Metrics struct {
	Writes     *prometheus.CounterVec
	Failures   *prometheus.CounterVec
	Skipped    *prometheus.CounterVec
	QueueDepth prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// already registered by another engine on the same registry are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flatshare",
			Subsystem: "mirror",
			Name:      "writes_total",
			Help:      "Remote writes applied by the mirror worker, by operation.",
		}, []string{"op"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flatshare",
			Subsystem: "mirror",
			Name:      "failures_total",
			Help:      "Remote writes that failed, by operation.",
		}, []string{"op"}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flatshare",
			Subsystem: "bootstrap",
			Name:      "skipped_records_total",
			Help:      "Remote records dropped during bootstrap because they failed to decode.",
		}, []string{"collection"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flatshare",
			Subsystem: "mirror",
			Name:      "queue_depth",
			Help:      "Operations waiting in the outbound queue.",
		}),
	}
	if reg == nil {
		return m
	}
	m.Writes = register(reg, m.Writes)
	m.Failures = register(reg, m.Failures)
	m.Skipped = register(reg, m.Skipped)
	m.QueueDepth = register(reg, m.QueueDepth)
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}
