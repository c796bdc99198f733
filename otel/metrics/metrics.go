package metrics

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter metric.Meter

	// console HTTP metrics
	httpRequestsTotal    metric.Int64Counter
	httpRequestDuration  metric.Float64Histogram
	httpRequestsInFlight metric.Int64UpDownCounter

	// backend calls
	downstreamCallsTotal   metric.Int64Counter
	downstreamCallDuration metric.Float64Histogram
	forcedLogoutsTotal     metric.Int64Counter

	goGoroutines  metric.Int64ObservableGauge
	goMemoryUsage metric.Int64ObservableGauge
)

// Init creates the instruments on the global meter provider. Recording before Init is a no-op.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of console HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Console HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	httpRequestsInFlight, err = meter.Int64UpDownCounter(
		"http_requests_in_flight",
		metric.WithDescription("Number of console HTTP requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_in_flight gauge: %w", err)
	}

	downstreamCallsTotal, err = meter.Int64Counter(
		"downstream_calls_total",
		metric.WithDescription("Total number of Saveat backend calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create downstream_calls_total counter: %w", err)
	}

	downstreamCallDuration, err = meter.Float64Histogram(
		"downstream_call_duration_seconds",
		metric.WithDescription("Saveat backend call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create downstream_call_duration_seconds histogram: %w", err)
	}

	forcedLogoutsTotal, err = meter.Int64Counter(
		"forced_logouts_total",
		metric.WithDescription("Sessions discarded because the backend answered 401"),
		metric.WithUnit("{logout}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create forced_logouts_total counter: %w", err)
	}

	goGoroutines, err = meter.Int64ObservableGauge(
		"go_goroutines",
		metric.WithDescription("Number of goroutines currently running"),
		metric.WithUnit("{goroutine}"),
		metric.WithInt64Callback(func(ctx context.Context, observer metric.Int64Observer) error {
			observer.Observe(int64(runtime.NumGoroutine()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create go_goroutines gauge: %w", err)
	}

	goMemoryUsage, err = meter.Int64ObservableGauge(
		"go_memory_usage_bytes",
		metric.WithDescription("Memory usage in bytes"),
		metric.WithUnit("By"),
		metric.WithInt64Callback(func(ctx context.Context, observer metric.Int64Observer) error {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			observer.Observe(int64(m.Alloc))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create go_memory_usage_bytes gauge: %w", err)
	}

	return nil
}

// RecordHTTPRequest records one console request.
func RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
	)

	if httpRequestsTotal != nil {
		httpRequestsTotal.Add(ctx, 1, attrs)
	}
	if httpRequestDuration != nil {
		httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func IncrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, 1)
}

func DecrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, -1)
}

func addInFlight(ctx context.Context, method, route string, delta int64) {
	if httpRequestsInFlight == nil {
		return
	}
	httpRequestsInFlight.Add(ctx, delta, metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	))
}

// RecordDownstreamCall records one backend call. status is 0 when no response arrived.
func RecordDownstreamCall(ctx context.Context, operation string, status int, duration time.Duration, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Int("http.status_code", status),
		attribute.Bool("success", success),
	)

	if downstreamCallsTotal != nil {
		downstreamCallsTotal.Add(ctx, 1, attrs)
	}
	if downstreamCallDuration != nil {
		downstreamCallDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func RecordForcedLogout(ctx context.Context, path string) {
	if forcedLogoutsTotal != nil {
		forcedLogoutsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("http.target", path)))
	}
}
