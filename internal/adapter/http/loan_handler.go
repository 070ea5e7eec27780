package http

import (
	"net/http"
	"strconv"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type visibilityReq struct {
	ShowOnHome *bool `json:"show_on_home" validate:"required"`
}

// ListLoans filters by creator email and, with home=true, by visibility.
func (h *Handler) ListLoans(c echo.Context) error {
	in := loan.ListLoansInput{CreatorEmail: c.QueryParam("email")}
	if raw := c.QueryParam("home"); raw != "" {
		home, err := strconv.ParseBool(raw)
		if err != nil {
			return h.fail(c, apperror.InvalidArgument("home must be a boolean"))
		}
		in.OnlyVisible = home
	}
	ctx := c.Request().Context()
	var (
		loans []loan.LoanDTO
		err   error
	)
	switch {
	case in.CreatorEmail != "" && !in.OnlyVisible:
		loans, err = h.svc().Query.LoansByCreator(ctx, in.CreatorEmail)
	case in.CreatorEmail == "" && in.OnlyVisible:
		loans, err = h.svc().Query.VisibleLoans(ctx)
	default:
		loans, err = h.svc().Loans.ListLoans(ctx, in)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) VisibleLoans(c echo.Context) error {
	loans, err := h.svc().Query.VisibleLoans(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) GetLoan(c echo.Context) error {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return h.fail(c, err)
	}
	dto, err := h.svc().Loans.GetLoan(c.Request().Context(), loanID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var req loan.CreateLoanInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.svc().Loans.CreateLoan(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *Handler) UpdateLoan(c echo.Context) error {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return h.fail(c, err)
	}
	var req loan.UpdateLoanInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.svc().Loans.UpdateLoan(c.Request().Context(), actorOf(c), loanID, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) SetLoanVisibility(c echo.Context) error {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return h.fail(c, err)
	}
	var req visibilityReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.svc().Loans.SetLoanVisibility(c.Request().Context(), actorOf(c), loanID, *req.ShowOnHome)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) DeleteLoan(c echo.Context) error {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.svc().Loans.DeleteLoan(c.Request().Context(), actorOf(c), loanID); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
