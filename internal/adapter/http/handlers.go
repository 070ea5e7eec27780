package http

import (
	"net/http"
	"time"

	"loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/adapter/repository/mysql"
	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/infrastructure/logger"
	"loanlink-backend/internal/infrastructure/readiness"
	"loanlink-backend/internal/usecase/loan"
	"loanlink-backend/internal/usecase/payment"
	"loanlink-backend/internal/usecase/query"
	userUC "loanlink-backend/internal/usecase/user"
	"loanlink-backend/internal/usecase/workflow"
	"loanlink-backend/pkg/id"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Services are the use cases bootstrap publishes once storage is reachable.
type Services struct {
	Users    *userUC.Usecase
	Loans    *loan.Usecase
	Workflow *workflow.Usecase
	Query    *query.Usecase
	Payments *payment.Usecase
}

// NewServices wires the use cases over db. gw may be nil when payments are
// not configured.
func NewServices(db *gorm.DB, obs workflow.Observer, gw payment.Gateway) *Services {
	repos := mysql.Repos(db)
	tx := mysql.NewGormUoW(db)
	return &Services{
		Users:    userUC.NewUsecase(repos.Users),
		Loans:    loan.NewUsecase(repos.Loans, repos.Users, tx),
		Workflow: workflow.NewUsecase(repos.Applications, tx, obs),
		Query:    query.NewUsecase(repos.Applications, repos.Users, repos.Loans),
		Payments: payment.NewUsecase(repos.Loans, gw),
	}
}

// Handler serves every route. Use cases are read from the gate, which the
// Ready middleware guarantees is open before an API handler runs.
type Handler struct {
	gate *readiness.Gate[*Services]
	log  *logger.Logger
}

func NewHandler(gate *readiness.Gate[*Services], log *logger.Logger) *Handler {
	return &Handler{gate: gate, log: log}
}

func (h *Handler) svc() *Services { return h.gate.Value() }

func (h *Handler) Banner(c echo.Context) error {
	return c.String(http.StatusOK, "LoanLink API")
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Ready reports whether storage is wired, without waiting for it.
func (h *Handler) Ready(c echo.Context) error {
	if !h.gate.Ready() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "starting"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func actorOf(c echo.Context) user.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

// pathID returns the named path param when it is a well-formed record id.
func pathID(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if !id.Valid(v) {
		return "", apperror.InvalidArgument("malformed %s %q", name, v)
	}
	return v, nil
}
