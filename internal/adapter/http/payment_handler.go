package http

import (
	"net/http"

	"loanlink-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateCheckoutSession(c echo.Context) error {
	var req payment.CheckoutInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	sess, err := h.svc().Payments.CreateCheckoutSession(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, sess)
}
