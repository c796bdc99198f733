package metrics

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	require.NoError(t, Init("saveat-admin"))

	ctx := context.Background()
	RecordDownstreamCall(ctx, "list_donors", http.StatusOK, 20*time.Millisecond, true)
	RecordDownstreamCall(ctx, "list_admin_products", http.StatusUnauthorized, 5*time.Millisecond, false)
	RecordForcedLogout(ctx, "/products/admin")
	RecordHTTPRequest(ctx, http.MethodGet, "/inventory", http.StatusOK, time.Millisecond)
	IncrementInFlightRequests(ctx, http.MethodGet, "/inventory")
	DecrementInFlightRequests(ctx, http.MethodGet, "/inventory")

	got := collect(t, reader)

	calls, ok := got["downstream_calls_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range calls.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	logouts, ok := got["forced_logouts_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, logouts.DataPoints, 1)
	assert.Equal(t, int64(1), logouts.DataPoints[0].Value)

	assert.Contains(t, got, "http_requests_total")
	assert.Contains(t, got, "http_request_duration_seconds")
	assert.Contains(t, got, "go_goroutines")
}
