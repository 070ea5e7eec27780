package middleware

import (
	"context"
	"net/http"
	"time"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/infrastructure/readiness"

	"github.com/labstack/echo/v4"
)

// Ready holds each request until the gate opens, for at most timeout.
func Ready[T any](gate *readiness.Gate[T], timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if gate.Ready() {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			if _, err := gate.Wait(ctx); err != nil {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, errorBody(apperror.KindUnavailable, "service is starting, try again"))
			}
			return next(c)
		}
	}
}
