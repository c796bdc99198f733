package echo

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/octabyte/saveat-admin/otel/metrics"
	reqctx "github.com/octabyte/saveat-admin/utils/context"
)

// Middleware traces and measures console requests. Requests for which skipper returns true
// pass through untouched.
func Middleware(serviceName string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	base := otelecho.Middleware(serviceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		traced := base(annotate(next))

		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			ctx := c.Request().Context()
			method := c.Request().Method
			route := c.Path()
			start := time.Now()

			metrics.IncrementInFlightRequests(ctx, method, route)
			err := traced(c)
			metrics.DecrementInFlightRequests(ctx, method, route)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			metrics.RecordHTTPRequest(ctx, method, route, status, time.Since(start))

			return err
		}
	}
}

// annotate runs inside the server span so the session placed by the route guard is visible.
func annotate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		ctx := c.Request().Context()
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return err
		}

		session, ok := reqctx.GetSessionFromContext(ctx)
		span.SetAttributes(attribute.Bool("saveat.authenticated", ok && session.IsAuthenticated()))
		if ok && session.User != nil {
			span.SetAttributes(
				attribute.String("saveat.user_id", session.User.ID),
				attribute.String("saveat.role", session.User.Role.String()),
			)
		}
		if err != nil {
			span.SetAttributes(attribute.String("error.message", err.Error()))
		}
		return err
	}
}
