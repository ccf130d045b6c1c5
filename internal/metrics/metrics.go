// Package metrics exposes per-run counters and distributions for the
// annotation pipeline in Prometheus form.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricRecordsTotal        = "catalogwatch_records_total"
	MetricRecordsByWindow     = "catalogwatch_records_by_window_total"
	MetricSignalsTotal        = "catalogwatch_ownership_signals_total"
	MetricScore               = "catalogwatch_score"
	MetricOwnershipConfidence = "catalogwatch_ownership_confidence"
	MetricRunDuration         = "catalogwatch_run_duration_seconds"
	MetricLastRunTimestamp    = "catalogwatch_last_run_timestamp"
	MetricLastRunRecordCount  = "catalogwatch_last_run_record_count"
	MetricParseCacheHitsTotal = "catalogwatch_parse_cache_hits_total"
)

var unitBuckets = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

// Metrics contains Prometheus metrics for annotation runs.
// All operations are thread-safe.
type Metrics struct {
	recordsTotal        prometheus.Counter
	recordsByWindow     *prometheus.CounterVec
	signalsTotal        *prometheus.CounterVec
	score               prometheus.Histogram
	ownershipConfidence prometheus.Histogram
	runDuration         prometheus.Histogram
	lastRunTimestamp    prometheus.Gauge
	lastRunRecordCount  prometheus.Gauge
	parseCacheHits      prometheus.Counter
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		recordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsTotal,
			Help: "Total number of catalog records annotated",
		}),
		recordsByWindow: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRecordsByWindow,
			Help: "Annotated catalog records per eligibility window",
		}, []string{"window"}),
		signalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricSignalsTotal,
			Help: "Ownership signals detected in notes, by signal",
		}, []string{"signal"}),
		score: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricScore,
			Help:    "Distribution of composite scores",
			Buckets: unitBuckets,
		}),
		ownershipConfidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricOwnershipConfidence,
			Help:    "Distribution of ownership signal confidence",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 1.0},
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRunDuration,
			Help:    "Histogram of annotation run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastRunTimestamp,
			Help: "Unix timestamp of the last annotation run",
		}),
		lastRunRecordCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastRunRecordCount,
			Help: "Number of records annotated in the last run",
		}),
		parseCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricParseCacheHitsTotal,
			Help: "Ownership note parses served from the cache",
		}),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRecord records one annotated record
func (m *Metrics) ObserveRecord(window string, signals map[string]bool, score, confidence float64) {
	m.recordsTotal.Inc()
	m.recordsByWindow.WithLabelValues(window).Inc()
	for name, present := range signals {
		if present {
			m.signalsTotal.WithLabelValues(name).Inc()
		}
	}
	m.score.Observe(score)
	m.ownershipConfidence.Observe(confidence)
}

// IncParseCacheHits counts a parse served from the cache
func (m *Metrics) IncParseCacheHits() {
	m.parseCacheHits.Inc()
}

// ObserveRun records the outcome of a completed run
func (m *Metrics) ObserveRun(seconds float64, records int, timestamp float64) {
	m.runDuration.Observe(seconds)
	m.lastRunRecordCount.Set(float64(records))
	m.lastRunTimestamp.Set(timestamp)
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.recordsTotal,
		m.recordsByWindow,
		m.signalsTotal,
		m.score,
		m.ownershipConfidence,
		m.runDuration,
		m.lastRunTimestamp,
		m.lastRunRecordCount,
		m.parseCacheHits,
	}
}

// WriteTextfile gathers reg and writes it in the node exporter textfile format
func WriteTextfile(path string, reg prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
