package reconcile

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK       = "ok"
	resultFastPath = "fast_path"
	resultFailed   = "failed"
)

// Metrics holds the Prometheus collectors for reconciliation cycles.
type Metrics struct {
	cycles         *prometheus.CounterVec
	changes        *prometheus.CounterVec
	notifyFailures *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "untis_reconcile_cycles_total",
			Help: "Reconciliation cycles by feed kind and result.",
		}, []string{"kind", "result"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "untis_reconcile_changes_total",
			Help: "Detected changes by feed kind and change type.",
		}, []string{"kind", "type"}),
		notifyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "untis_notify_failures_total",
			Help: "Notifier dispatch failures by feed kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "untis_reconcile_duration_seconds",
			Help:    "Duration of reconciliation cycles.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	reg.MustRegister(m.cycles, m.changes, m.notifyFailures, m.duration)
	return m
}

func (m *Metrics) observe(o *Outcome) {
	if m == nil {
		return
	}
	kind := string(o.Kind)

	result := resultOK
	switch {
	case o.Err != nil:
		result = resultFailed
	case o.FastPath:
		result = resultFastPath
	}
	m.cycles.WithLabelValues(kind, result).Inc()
	m.duration.WithLabelValues(kind).Observe(o.Duration().Seconds())

	for _, c := range o.Changes {
		m.changes.WithLabelValues(kind, string(c.Type)).Inc()
	}
	if o.NotifyErr != nil {
		m.notifyFailures.WithLabelValues(kind).Inc()
	}
}
