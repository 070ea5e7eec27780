package http

import (
	"net/http"

	"loanlink-backend/internal/domain/apperror"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error         string       `json:"error"`
	Code          string       `json:"code,omitempty"`
	CurrentStatus string       `json:"current_status,omitempty"`
	Details       []FieldError `json:"details,omitempty"`
}

func statusFor(k apperror.Kind) int {
	switch k {
	case apperror.KindInvalidArgument:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindInvalidState, apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes err as an ErrorResponse. Server-side failures are logged with
// the request's context fields; their detail never reaches the client.
func (h *Handler) fail(c echo.Context, err error) error {
	kind := apperror.KindOf(err)
	status := statusFor(kind)
	body := ErrorResponse{Error: "internal error", Code: string(kind)}
	if typed := apperror.As(err); typed != nil {
		body.Error = typed.Message()
		body.CurrentStatus = typed.CurrentStatus()
	}
	if status >= http.StatusInternalServerError {
		h.log.Error(c.Request().Context(), "request failed", err)
	}
	if kind.Retryable() {
		c.Response().Header().Set("Retry-After", "1")
	}
	return c.JSON(status, body)
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: string(apperror.KindInvalidArgument)})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    string(apperror.KindInvalidArgument),
		Details: ToFieldErrors(err),
	})
}

// bindValid binds the body into dst and validates it, writing the 400/422
// itself. ok is false when a response has already been written.
func bindValid(c echo.Context, dst any) (ok bool, err error) {
	if err := c.Bind(dst); err != nil {
		return false, badBody(c)
	}
	if err := c.Validate(dst); err != nil {
		return false, invalid(c, err)
	}
	return true, nil
}
