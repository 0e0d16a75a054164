// Package observe provides OpenTelemetry metrics for coachd and the HTTP
// middleware that records request latency.
//
// Metrics are exported to Prometheus through [InitProvider] and scraped from
// the health server's /metrics endpoint. Tests should use [NewMetrics] with a
// ManualReader-backed provider to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all coachd metrics.
const meterName = "github.com/nadzzz/coachd"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use.
type Metrics struct {
	// AnalyzeDuration tracks end-to-end Analyze latency.
	AnalyzeDuration metric.Float64Histogram

	// CompletionDuration tracks external completion latency. Use with attribute:
	//   attribute.String("kind", ...)
	CompletionDuration metric.Float64Histogram

	// Analyses counts finished analyses. Use with attributes:
	//   attribute.String("mode", ...), attribute.String("language", ...)
	Analyses metric.Int64Counter

	// CompletionRequests counts completion calls. Use with attributes:
	//   attribute.String("kind", ...), attribute.String("status", ...)
	CompletionRequests metric.Int64Counter

	// KeywordFallbacks counts service keyword extractions replaced by the
	// dictionary result.
	KeywordFallbacks metric.Int64Counter

	// InterviewFallbacks counts service question sets and summaries replaced
	// by local results. Use with attribute:
	//   attribute.String("stage", "questions"|"summary")
	InterviewFallbacks metric.Int64Counter

	// CacheLookups counts translation cache lookups. Use with attribute:
	//   attribute.String("result", "hit"|"miss")
	CacheLookups metric.Int64Counter

	// Failures counts structured failures returned to callers. Use with attributes:
	//   attribute.String("operation", ...), attribute.String("kind", ...)
	Failures metric.Int64Counter

	// HTTPRequestDuration tracks HTTP request processing time.
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets are histogram boundaries in seconds.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AnalyzeDuration, err = m.Float64Histogram("coachd.analyze.duration",
		metric.WithDescription("Latency of answer analysis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CompletionDuration, err = m.Float64Histogram("coachd.completion.duration",
		metric.WithDescription("Latency of external completion calls by kind."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Analyses, err = m.Int64Counter("coachd.analyses",
		metric.WithDescription("Total analyses by mode and language."),
	); err != nil {
		return nil, err
	}
	if met.CompletionRequests, err = m.Int64Counter("coachd.completion.requests",
		metric.WithDescription("Total completion requests by kind and status."),
	); err != nil {
		return nil, err
	}
	if met.KeywordFallbacks, err = m.Int64Counter("coachd.keywords.fallbacks",
		metric.WithDescription("Service keyword extractions replaced by dictionary results."),
	); err != nil {
		return nil, err
	}
	if met.InterviewFallbacks, err = m.Int64Counter("coachd.interview.fallbacks",
		metric.WithDescription("Service interview results replaced by local results, by stage."),
	); err != nil {
		return nil, err
	}
	if met.CacheLookups, err = m.Int64Counter("coachd.translation_cache.lookups",
		metric.WithDescription("Translation cache lookups by result."),
	); err != nil {
		return nil, err
	}
	if met.Failures, err = m.Int64Counter("coachd.failures",
		metric.WithDescription("Structured failures by operation and kind."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("coachd.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Call it after [InitProvider].
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Discard returns a Metrics instance backed by a no-op provider.
func Discard() *Metrics {
	m, err := NewMetrics(noopProvider())
	if err != nil {
		panic("observe: failed to create no-op metrics: " + err.Error())
	}
	return m
}

// RecordCompletion records one completion call with its outcome.
func (m *Metrics) RecordCompletion(ctx context.Context, kind string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CompletionRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	))
	m.CompletionDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordCacheLookup records a translation cache hit or miss.
func (m *Metrics) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordInterviewFallback records a service interview result replaced by the
// local one.
func (m *Metrics) RecordInterviewFallback(ctx context.Context, stage string) {
	m.InterviewFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordAnalysis records a finished analysis.
func (m *Metrics) RecordAnalysis(ctx context.Context, mode, language string, seconds float64) {
	m.Analyses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("language", language),
	))
	m.AnalyzeDuration.Record(ctx, seconds)
}

// RecordFailure records a structured failure returned by an operation.
func (m *Metrics) RecordFailure(ctx context.Context, operation, kind string) {
	m.Failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("kind", kind),
	))
}
