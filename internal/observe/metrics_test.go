package observe

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetricsCreatesInstruments(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestRecordToolCall(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolCall(ctx, "notion_search", "success", 0.2)
	m.RecordToolCall(ctx, "notion_search", "error", 0.1)

	rm := collect(t, reader)

	met := findMetric(rm, "toolbridge.tool.calls")
	if met == nil {
		t.Fatal("tool calls metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("tool calls metric is not a sum")
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("total tool calls = %d, want 2", total)
	}

	durMet := findMetric(rm, "toolbridge.tool.duration")
	if durMet == nil {
		t.Fatal("duration metric not found")
	}
	hist, ok := durMet.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("duration metric is not a histogram")
	}
	if len(hist.DataPoints) == 0 || hist.DataPoints[0].Count != 2 {
		t.Error("expected 2 duration samples")
	}
}

func TestRecordRegistration(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordRegistration(ctx, "NotionToolkit", "missing_api_keys")
	m.RecordRegistration(ctx, "NotionToolkit", "success")

	rm := collect(t, reader)
	met := findMetric(rm, "toolbridge.toolkit.registrations")
	if met == nil {
		t.Fatal("registrations metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("registrations metric is not a sum")
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("total registrations = %d, want 2", total)
	}
}

func TestToolkitActivatedGauge(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.ToolkitActivated(ctx, "SQLiteToolkit", 1)
	m.ToolkitActivated(ctx, "SQLiteToolkit", 1)
	m.ToolkitActivated(ctx, "SQLiteToolkit", -1)

	rm := collect(t, reader)
	met := findMetric(rm, "toolbridge.toolkits.registered")
	if met == nil {
		t.Fatal("registered toolkits metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("registered toolkits metric is not a sum")
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if got := sum.DataPoints[0].Value; got != 1 {
		t.Errorf("gauge value = %d, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordToolCall(context.Background(), "x", "success", 0)
	m.RecordRegistration(context.Background(), "x", "error")
	m.ToolkitActivated(context.Background(), "x", 1)
}

func TestDefaultMetricsReturnsSameInstance(t *testing.T) {
	a := DefaultMetrics()
	b := DefaultMetrics()
	if a != b {
		t.Error("DefaultMetrics returned different pointers")
	}
}
