// Package observe provides OpenTelemetry metrics for the server: tool call
// counters and latency, and toolkit registration outcomes. A Prometheus
// exporter bridge is available via InitProvider so metrics can be scraped
// from a standard /metrics endpoint.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "toolbridge"

// Metrics holds the metric instruments. The underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// ToolCallDuration tracks tool execution latency. Attributes:
	//   attribute.String("tool", ...), attribute.String("toolkit", ...)
	ToolCallDuration metric.Float64Histogram

	// ToolCalls counts tool invocations. Attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	ToolCalls metric.Int64Counter

	// ToolkitRegistrations counts register_toolkit attempts. Attributes:
	//   attribute.String("toolkit", ...), attribute.String("status", ...)
	ToolkitRegistrations metric.Int64Counter

	// RegisteredToolkits tracks the number of currently registered toolkits.
	RegisteredToolkits metric.Int64UpDownCounter
}

var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

// NewMetrics creates a fully initialised Metrics struct using the given
// metric.MeterProvider. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ToolCallDuration, err = m.Float64Histogram("toolbridge.tool.duration",
		metric.WithDescription("Latency of tool execution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ToolCalls, err = m.Int64Counter("toolbridge.tool.calls",
		metric.WithDescription("Total tool invocations by tool name and status."),
	); err != nil {
		return nil, err
	}
	if met.ToolkitRegistrations, err = m.Int64Counter("toolbridge.toolkit.registrations",
		metric.WithDescription("Total toolkit registration attempts by toolkit and status."),
	); err != nil {
		return nil, err
	}
	if met.RegisteredToolkits, err = m.Int64UpDownCounter("toolbridge.toolkits.registered",
		metric.WithDescription("Number of currently registered toolkits."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level Metrics instance, creating it on
// first call using otel.GetMeterProvider. Panics if instrument creation
// fails, which should not happen with the global provider.
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

// RecordToolCall records a tool invocation with its status.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, seconds float64) {
	if m == nil {
		return
	}
	m.ToolCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	))
	m.ToolCallDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("tool", tool),
	))
}

// RecordRegistration records a register_toolkit attempt with its outcome
// status.
func (m *Metrics) RecordRegistration(ctx context.Context, toolkit, status string) {
	if m == nil {
		return
	}
	m.ToolkitRegistrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("toolkit", toolkit),
		attribute.String("status", status),
	))
}

// ToolkitActivated adjusts the registered-toolkit gauge. Pass delta 1 on a
// first successful registration and -1 when a toolkit is torn down.
func (m *Metrics) ToolkitActivated(ctx context.Context, toolkit string, delta int64) {
	if m == nil {
		return
	}
	m.RegisteredToolkits.Add(ctx, delta, metric.WithAttributes(
		attribute.String("toolkit", toolkit),
	))
}
