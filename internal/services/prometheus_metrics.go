package services

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricRecordMutation   = "record_mutation"
	MetricRecordEventError = "record_event_publish_failed"
	MetricAuthEvent        = "authentication_event"
	MetricReportDuration   = "report_duration"
	MetricDemoDataRecords  = "demo_data_generated"
)

// PrometheusMetrics records business metrics with the default registry
type PrometheusMetrics struct {
	recordMutations      *prometheus.CounterVec
	recordEventFailures  *prometheus.CounterVec
	authEventsTotal      *prometheus.CounterVec
	aggregationDuration  *prometheus.HistogramVec
	demoRecordsGenerated *prometheus.CounterVec
}

// NewPrometheusMetrics registers the collectors on the default registerer.
// Call it once per process.
func NewPrometheusMetrics() MetricsRecorderInterface {
	return newPrometheusMetrics(promauto.With(prometheus.DefaultRegisterer))
}

func newPrometheusMetrics(factory promauto.Factory) *PrometheusMetrics {
	return &PrometheusMetrics{
		recordMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "record_mutations_total",
				Help: "Total number of expense and income mutations",
			},
			[]string{"kind", "action"},
		),
		recordEventFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "record_event_publish_failures_total",
				Help: "Total number of record events that could not be published",
			},
			[]string{"kind"},
		),
		authEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		aggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_aggregation_duration_milliseconds",
				Help:    "Time spent loading and aggregating records for a report",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"report"},
		),
		demoRecordsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "demo_records_generated_total",
				Help: "Total number of demo records generated",
			},
			[]string{"kind"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	kind := tags["kind"]

	switch name {
	case MetricRecordMutation:
		if action := tags["action"]; kind != "" && action != "" {
			m.recordMutations.WithLabelValues(kind, action).Inc()
		}
	case MetricRecordEventError:
		m.recordEventFailures.WithLabelValues(kind).Inc()
	case MetricAuthEvent:
		if eventType := tags["event_type"]; eventType != "" {
			m.authEventsTotal.WithLabelValues(eventType).Inc()
		}
	case MetricDemoDataRecords:
		if kind != "" {
			m.demoRecordsGenerated.WithLabelValues(kind).Inc()
		}
	}
}

// RecordProcessingTime observes report durations. name is
// "report_duration.<report>".
func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	report, ok := strings.CutPrefix(name, MetricReportDuration+".")
	if !ok || report == "" {
		return
	}
	m.aggregationDuration.WithLabelValues(report).Observe(float64(duration.Milliseconds()))
}

// NoopMetrics discards everything
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string) {}
func (NoopMetrics) RecordProcessingTime(string, time.Duration) {}
