// Package metrics provides Prometheus metrics for the hybrid data access layer
package metrics

import (
	"time"

	"quest/internal/domain/entity"
	"quest/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HybridMetrics contains Prometheus metrics for tier selection, replication and sync.
// A nil *HybridMetrics records nothing.
//
// Operation and replication status labels use the service.Operation* and
// service.Replication* values.
type HybridMetrics struct {
	servedTotal       *prometheus.CounterVec
	tierFailuresTotal *prometheus.CounterVec
	replicationTotal  *prometheus.CounterVec
	replicationQueue  prometheus.Gauge
	syncTotal         *prometheus.CounterVec
	syncDuration      prometheus.Histogram
	lastSyncTimestamp prometheus.Gauge
	localRowsGauge    *prometheus.GaugeVec
}

var _ service.TierMetrics = (*HybridMetrics)(nil)

// NewRegistry creates the registry served on the metrics endpoint, with Go runtime
// and process collectors attached.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// NewHybridMetrics creates and registers the metrics
func NewHybridMetrics(registry *prometheus.Registry) (*HybridMetrics, error) {
	m := &HybridMetrics{
		servedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quest_requests_served_total",
				Help: "Requests answered, by entity, operation and the tier that answered",
			},
			[]string{"entity", "operation", "source"},
		),
		tierFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quest_tier_failures_total",
				Help: "Tier attempts that failed and caused a fallback",
			},
			[]string{"entity", "tier"},
		),
		replicationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quest_replication_rows_total",
				Help: "Rows handled by background replication, by outcome",
			},
			[]string{"entity", "status"},
		),
		replicationQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quest_replication_queue_depth",
			Help: "Replication jobs waiting for a worker",
		}),
		syncTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quest_full_sync_total",
				Help: "Full sync runs by status",
			},
			[]string{"status"},
		),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "quest_full_sync_duration_seconds",
			Help: "Time taken by a full sync",
			// 50ms up to ~100s
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		lastSyncTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quest_last_sync_timestamp_seconds",
			Help: "Unix time of the last successful full sync",
		}),
		localRowsGauge: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quest_local_rows",
				Help: "Rows in the local store after the last full sync",
			},
			[]string{"entity"},
		),
	}

	if err := registry.Register(m); err != nil {
		return nil, err
	}

	return m, nil
}

// Describe implements prometheus.Collector
func (m *HybridMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.servedTotal.Describe(ch)
	m.tierFailuresTotal.Describe(ch)
	m.replicationTotal.Describe(ch)
	m.replicationQueue.Describe(ch)
	m.syncTotal.Describe(ch)
	m.syncDuration.Describe(ch)
	m.lastSyncTimestamp.Describe(ch)
	m.localRowsGauge.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *HybridMetrics) Collect(ch chan<- prometheus.Metric) {
	m.servedTotal.Collect(ch)
	m.tierFailuresTotal.Collect(ch)
	m.replicationTotal.Collect(ch)
	m.replicationQueue.Collect(ch)
	m.syncTotal.Collect(ch)
	m.syncDuration.Collect(ch)
	m.lastSyncTimestamp.Collect(ch)
	m.localRowsGauge.Collect(ch)
}

// RecordServed counts a request answered by source.
func (m *HybridMetrics) RecordServed(kind entity.Kind, operation string, source entity.Source) {
	if m == nil {
		return
	}
	m.servedTotal.WithLabelValues(kind.String(), operation, source.String()).Inc()
}

// RecordTierFailure counts a failed tier attempt.
func (m *HybridMetrics) RecordTierFailure(kind entity.Kind, tier entity.Source) {
	if m == nil {
		return
	}
	m.tierFailuresTotal.WithLabelValues(kind.String(), tier.String()).Inc()
}

// RecordReplication adds n rows with the given outcome.
func (m *HybridMetrics) RecordReplication(kind entity.Kind, status string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.replicationTotal.WithLabelValues(kind.String(), status).Add(float64(n))
}

// SetReplicationQueueDepth reports the number of queued jobs.
func (m *HybridMetrics) SetReplicationQueueDepth(n int) {
	if m == nil {
		return
	}
	m.replicationQueue.Set(float64(n))
}

// RecordSync records one full sync run and, on success, the resulting row counts.
func (m *HybridMetrics) RecordSync(success bool, duration time.Duration, finishedAt time.Time, counts map[entity.Kind]int) {
	if m == nil {
		return
	}

	m.syncDuration.Observe(duration.Seconds())
	if !success {
		m.syncTotal.WithLabelValues("error").Inc()

		return
	}

	m.syncTotal.WithLabelValues("success").Inc()
	m.lastSyncTimestamp.Set(float64(finishedAt.Unix()))
	for kind, n := range counts {
		m.localRowsGauge.WithLabelValues(kind.String()).Set(float64(n))
	}
}
