package middleware

import (
	"context"
	"net/http"

	"loanlink-backend/internal/config"
	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/infrastructure/auth"
	"loanlink-backend/internal/infrastructure/logger"

	"github.com/labstack/echo/v4"
)

// ActorResolver turns a verified email into the request actor.
type ActorResolver func(ctx context.Context, email string) (user.Actor, error)

// Auth verifies the bearer token and resolves the actor's role from the user
// store; the token never carries a role.
func Auth(cfg config.AuthConfig, resolve ActorResolver, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			raw, ok := auth.BearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c, "missing bearer token")
			}
			claims, err := auth.Parse(cfg, raw)
			if err != nil {
				return unauthorized(c, "invalid token")
			}

			actor, err := resolve(req.Context(), claims.Email)
			if err != nil {
				switch apperror.KindOf(err) {
				case apperror.KindInvalidArgument:
					return unauthorized(c, "invalid token subject")
				case apperror.KindUnavailable:
					return c.JSON(http.StatusServiceUnavailable, errorBody(apperror.KindUnavailable, "identity store unavailable"))
				}
				log.Error(req.Context(), "resolve actor", err)
				return c.JSON(http.StatusInternalServerError, errorBody(apperror.KindInternal, "internal error"))
			}

			setActor(c, actor)
			c.SetRequest(req.WithContext(log.WithActor(req.Context(), actor.Email, string(actor.Role))))
			return next(c)
		}
	}
}

// ActiveOnly refuses suspended actors. Routes a suspended user may still
// call are registered without it.
func ActiveOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return unauthorized(c, "unauthenticated")
			}
			if actor.Suspended {
				return c.JSON(http.StatusForbidden, errorBody(apperror.KindForbidden, "account suspended"))
			}
			return next(c)
		}
	}
}
