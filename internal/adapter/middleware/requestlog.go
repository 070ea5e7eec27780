package middleware

import (
	"loanlink-backend/internal/infrastructure/logger"
	"loanlink-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestContext copies the request id into the logging context so every
// log line of the request carries it.
func RequestContext(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			if rid != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(log.WithRequestID(req.Context(), rid)))
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request and records its latency.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			m.ObserveRequest(v.Method, v.RoutePath, v.Status, v.Latency)

			zl := log.Zerolog(c.Request().Context())
			ev := zl.Info()
			if v.Status >= 500 {
				ev = zl.Error()
			} else if v.Status >= 400 {
				ev = zl.Warn()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
