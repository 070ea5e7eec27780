package middleware

import (
	"net/http"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const actorKey = "loanlink.actor"

// ActorFrom returns the actor the auth middleware resolved for this request.
func ActorFrom(c echo.Context) (user.Actor, bool) {
	a, ok := c.Get(actorKey).(user.Actor)
	return a, ok
}

func setActor(c echo.Context, a user.Actor) { c.Set(actorKey, a) }

// errorBody mirrors the http package's ErrorResponse for failures raised
// before a handler runs.
func errorBody(code apperror.Kind, msg string) map[string]string {
	return map[string]string{"error": msg, "code": string(code)}
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg, "code": "UNAUTHENTICATED"})
}
