package middleware

import (
	"time"

	applogger "Lohas/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs HTTP requests with the structured logger.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", req.RemoteAddr),
				applogger.Int("status", res.Status),
				applogger.Duration("latency_ms", latency),
			}
			if err != nil {
				fields = append(fields, applogger.Error(err))
				l.Warn("http request", fields...)
				return err
			}
			l.Info("http request", fields...)

			return nil
		}
	}
}
