package http

import (
	"context"
	"net/http"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

func (h *Handler) SubmitApplication(c echo.Context) error {
	var req workflow.SubmitInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.svc().Workflow.Submit(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *Handler) ListApplications(c echo.Context) error {
	apps, err := h.svc().Workflow.ListApplications(c.Request().Context(), actorOf(c), workflow.ListInput{
		UserEmail: c.QueryParam("email"),
		Status:    c.QueryParam("status"),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, apps)
}

func (h *Handler) ApplicationsWithSubmitter(c echo.Context) error {
	if !actorOf(c).IsStaff() {
		return h.fail(c, apperror.Forbidden("only managers and admins can list every application"))
	}
	rows, err := h.svc().Query.ApplicationsWithSubmitterName(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetApplication(c echo.Context) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return h.fail(c, err)
	}
	dto, err := h.svc().Workflow.GetApplication(c.Request().Context(), actorOf(c), appID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type transitionFunc func(ctx context.Context, actor user.Actor, applicationID string) (*workflow.ApplicationDTO, error)

func (h *Handler) decide(c echo.Context, pick func(*workflow.Usecase) transitionFunc) error {
	appID, err := pathID(c, "application_id")
	if err != nil {
		return h.fail(c, err)
	}
	dto, err := pick(h.svc().Workflow)(c.Request().Context(), actorOf(c), appID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ApproveApplication(c echo.Context) error {
	return h.decide(c, func(w *workflow.Usecase) transitionFunc { return w.Approve })
}

func (h *Handler) RejectApplication(c echo.Context) error {
	return h.decide(c, func(w *workflow.Usecase) transitionFunc { return w.Reject })
}

func (h *Handler) CancelApplication(c echo.Context) error {
	return h.decide(c, func(w *workflow.Usecase) transitionFunc { return w.Cancel })
}
