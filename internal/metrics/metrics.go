// Package metrics exposes Prometheus counters for backup runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ddl_archiver"

// Collector records backup outcomes. A nil *Collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	backedUp    *prometheus.CounterVec
	failures    *prometheus.CounterVec
	pruned      *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	lastSuccess *prometheus.GaugeVec
}

// NewCollector registers the backup metrics on registry. If registry is nil
// a fresh one is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		backedUp: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objects_backed_up_total",
			Help:      "Objects whose DDL snapshot was written.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "object_failures_total",
			Help:      "Objects skipped because extraction or writing failed.",
		}, []string{"kind", "reason"}),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_pruned_total",
			Help:      "Snapshot folders removed by the retention sweep.",
		}, []string{"kind"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of backup runs.",
			Buckets:   []float64{0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"mode"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that backed up at least one object.",
		}, []string{"kind"}),
	}

	registry.MustRegister(c.backedUp, c.failures, c.pruned, c.runDuration, c.lastSuccess)
	return c
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) RecordBackup(kind string) {
	if c == nil {
		return
	}
	c.backedUp.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordFailure(kind, reason string) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(kind, reason).Inc()
}

func (c *Collector) RecordPruned(kind string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.pruned.WithLabelValues(kind).Add(float64(n))
}

func (c *Collector) ObserveRun(mode, kind string, d time.Duration, backedUp int) {
	if c == nil {
		return
	}
	c.runDuration.WithLabelValues(mode).Observe(d.Seconds())
	if backedUp > 0 {
		c.lastSuccess.WithLabelValues(kind).SetToCurrentTime()
	}
}

// WriteTextfile dumps every metric to path in the node_exporter textfile
// format. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
