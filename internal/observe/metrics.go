// Package observe holds the OpenTelemetry instruments of the service and the
// provider setup that exposes them to Prometheus.
//
// Tests should build their own [Metrics] with [NewMetrics] over a
// ManualReader-backed provider instead of the global one.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

const meterName = "github.com/heartmarshall/shadowing-backend"

// Metrics holds all metric instruments. The OTel types are safe for
// concurrent use.
type Metrics struct {
	// ScoreOverall records the overall score of every scored attempt.
	ScoreOverall metric.Int64Histogram

	// TurnResults counts scored turns. Attribute: status.
	TurnResults metric.Int64Counter

	// SessionSaves counts session writes. Attribute: outcome
	// (saved, conflict, error).
	SessionSaves metric.Int64Counter

	// MergeRetries counts version races resolved by re-merging.
	MergeRetries metric.Int64Counter

	// ExplanationLookups counts explanation lookups. Attributes: source
	// (cache, provider), result (hit, miss, error).
	ExplanationLookups metric.Int64Counter

	// VocabImports counts words imported into learner vocabularies.
	VocabImports metric.Int64Counter

	// HTTPRequestDuration tracks request latency. Attributes: method, route,
	// status.
	HTTPRequestDuration metric.Float64Histogram
}

var scoreBuckets = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

var latencyBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates every instrument on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ScoreOverall, err = m.Int64Histogram("shadowing.score.overall",
		metric.WithDescription("Overall score of scored practice attempts."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TurnResults, err = m.Int64Counter("shadowing.score.turns",
		metric.WithDescription("Scored turns by status."),
	); err != nil {
		return nil, err
	}
	if met.SessionSaves, err = m.Int64Counter("shadowing.session.saves",
		metric.WithDescription("Practice session writes by outcome."),
	); err != nil {
		return nil, err
	}
	if met.MergeRetries, err = m.Int64Counter("shadowing.session.merge_retries",
		metric.WithDescription("Concurrent saves resolved by re-reading and re-merging."),
	); err != nil {
		return nil, err
	}
	if met.ExplanationLookups, err = m.Int64Counter("shadowing.explanation.lookups",
		metric.WithDescription("Word explanation lookups by source and result."),
	); err != nil {
		return nil, err
	}
	if met.VocabImports, err = m.Int64Counter("shadowing.vocabulary.imports",
		metric.WithDescription("Words imported into learner vocabularies."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("shadowing.http.request.duration",
		metric.WithDescription("HTTP request latency by method, route and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordScore records the overall score and one increment per turn status.
func (m *Metrics) RecordScore(ctx context.Context, result domain.ScoringResult) {
	m.ScoreOverall.Record(ctx, int64(result.OverallScore))
	for _, t := range result.Turns {
		m.TurnResults.Add(ctx, 1, metric.WithAttributes(attribute.String("status", t.Status.String())))
	}
}

// RecordSessionSave counts one session write with the given outcome.
func (m *Metrics) RecordSessionSave(ctx context.Context, outcome string) {
	m.SessionSaves.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordMergeRetry counts one re-merge after a lost version race.
func (m *Metrics) RecordMergeRetry(ctx context.Context) {
	m.MergeRetries.Add(ctx, 1)
}

// RecordExplanationLookup counts one explanation lookup.
func (m *Metrics) RecordExplanationLookup(ctx context.Context, source, result string) {
	m.ExplanationLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("result", result),
	))
}

// RecordVocabImport counts n imported words.
func (m *Metrics) RecordVocabImport(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	m.VocabImports.Add(ctx, int64(n))
}

// RecordHTTPRequest records the latency of one request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	m.HTTPRequestDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}
