package lookup

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "medi-map/lookup"

// metrics defaults to the global OTel meter, a no-op until a provider is set
type metrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(m metric.Meter) (*metrics, error) {
	requests, err := m.Int64Counter(
		"lookup.requests",
		metric.WithDescription("Total lookups started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	failures, err := m.Int64Counter(
		"lookup.failures",
		metric.WithDescription("Total lookups that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	duration, err := m.Float64Histogram(
		"lookup.duration",
		metric.WithDescription("Time from request to joined result"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &metrics{requests: requests, failures: failures, duration: duration}, nil
}

func (m *metrics) record(ctx context.Context, elapsed time.Duration, reason string) {
	outcome := attribute.String("outcome", "success")
	if reason != "" {
		outcome = attribute.String("outcome", reason)
		m.failures.Add(ctx, 1, metric.WithAttributes(outcome))
	}
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(outcome))
}
