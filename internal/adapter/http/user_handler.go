package http

import (
	"net/http"
	"net/url"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/user"
	userUC "loanlink-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type putUserReq struct {
	Name     string `json:"name" validate:"omitempty,max=255"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

type setRoleReq struct {
	Role string `json:"role" validate:"required"`
}

type setSuspensionReq struct {
	Suspended *bool  `json:"suspended" validate:"required"`
	Reason    string `json:"reason" validate:"max=1000"`
}

// PutUser creates or refreshes the profile of the token's own email.
func (h *Handler) PutUser(c echo.Context) error {
	var req putUserReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.svc().Users.PutUser(c.Request().Context(), userUC.PutUserInput{
		Email:    actorOf(c).Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ListUsers(c echo.Context) error {
	if !actorOf(c).IsAdmin() {
		return h.fail(c, apperror.Forbidden("only admins can list users"))
	}
	users, err := h.svc().Users.ListUsers(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return h.fail(c, err)
	}
	dto, err := h.svc().Users.GetUser(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) RoleByEmail(c echo.Context) error {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return h.fail(c, apperror.InvalidArgument("malformed email"))
	}
	// this route skips ActiveOnly; a suspended actor only gets its own role
	if actor := actorOf(c); actor.Suspended && user.NormalizeEmail(email) != user.NormalizeEmail(actor.Email) {
		return h.fail(c, apperror.Forbidden("account suspended"))
	}
	role, err := h.svc().Users.RoleByEmail(c.Request().Context(), email)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"email": user.NormalizeEmail(email), "role": string(role)})
}

func (h *Handler) SetUserRole(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return h.fail(c, err)
	}
	var req setRoleReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.svc().Users.SetUserRole(c.Request().Context(), actorOf(c), userID, user.Role(req.Role))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) SetUserSuspended(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return h.fail(c, err)
	}
	var req setSuspensionReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.svc().Users.SetUserSuspended(c.Request().Context(), actorOf(c), userID, *req.Suspended, req.Reason)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
