package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	otellogger "github.com/octabyte/saveat-admin/otel/logger"
	"github.com/octabyte/saveat-admin/utils/logger"
)

// RequestLogger writes one structured line per console request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the logged status is final.
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.String("client_ip", c.RealIP()),
				zap.String("user_agent", req.UserAgent()),
			}
			if s, ok := SessionFrom(c); ok && s.User != nil {
				fields = append(fields, zap.String("user_id", s.User.ID))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			fields = append(fields, otellogger.TraceFields(req.Context())...)

			switch {
			case status >= 500:
				logger.LogError("HTTP request", fields...)
			case status >= 400:
				logger.LogWarn("HTTP request", fields...)
			default:
				logger.LogInfo("HTTP request", fields...)
			}
			return nil
		}
	}
}
