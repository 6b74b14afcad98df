package updater

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "procmon"

type Metrics struct {
	Ticks           prometheus.Counter
	SkippedTicks    prometheus.Counter
	CollectErrors   prometheus.Counter
	CollectDuration prometheus.Histogram
	Processes       prometheus.Gauge
	Changes         *prometheus.CounterVec
	PublishFailures prometheus.Counter
}

// NewMetrics creates the refresh loop metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "ticks_total",
			Help:      "Refresh ticks that collected a snapshot.",
		}),
		SkippedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "skipped_ticks_total",
			Help:      "Refresh ticks skipped because refreshing is paused.",
		}),
		CollectErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "collect_errors_total",
			Help:      "Process table enumerations that failed.",
		}),
		CollectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "collect_duration_seconds",
			Help:      "Time spent enumerating the process table.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		Processes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "processes",
			Help:      "Processes in the current snapshot.",
		}),
		Changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "diff",
			Name:      "changes_total",
			Help:      "Process changes reported to consumers, by kind.",
		}, []string{"kind"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "publish_failures_total",
			Help:      "Change sets that could not be delivered to every subscriber.",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.Ticks, m.SkippedTicks, m.CollectErrors, m.CollectDuration,
		m.Processes, m.Changes, m.PublishFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
