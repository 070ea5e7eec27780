package http

import (
	"context"
	"net/http"
	"time"

	"loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/config"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/infrastructure/logger"
	"loanlink-backend/internal/infrastructure/metrics"
	"loanlink-backend/internal/infrastructure/readiness"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Config   *config.Config
	Log      *logger.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // nil hides /metrics
	Redis    redis.Cmdable       // nil disables idempotency
	Gate     *readiness.Gate[*Services]
}

// NewRouter wires every route. Middleware is attached per route rather than
// through groups so unmatched paths still answer 404.
func NewRouter(d RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.JSONSerializer = JSONSerializer{}

	e.Use(
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}),
		middleware.RequestContext(d.Log),
		middleware.RequestLogger(d.Log, d.Metrics),
		echomw.Recover(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     d.Config.App.CORSOrigins,
			AllowCredentials: true,
			AllowHeaders: []string{
				echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization,
				middleware.HeaderIdempotencyKey, middleware.HeaderRequestAt,
			},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		}),
	)

	h := NewHandler(d.Gate, d.Log)

	e.GET("/", h.Banner)
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	resolve := func(ctx context.Context, email string) (user.Actor, error) {
		return d.Gate.Value().Users.ResolveActor(ctx, email)
	}
	timeout := d.Config.App.ReadyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	authed := []echo.MiddlewareFunc{
		middleware.Ready(d.Gate, timeout),
		middleware.Auth(d.Config.Auth, resolve, d.Log),
	}
	// no ActiveOnly: RoleByEmail itself limits a suspended actor to its own email
	roleRead := authed
	protected := append(append([]echo.MiddlewareFunc{}, authed...), middleware.ActiveOnly())
	if d.Redis != nil {
		protected = append(protected, middleware.Idempotency(d.Redis, d.Config.Redis.IdempTTL, d.Log))
	}

	e.POST("/users", h.PutUser, protected...)
	e.GET("/users", h.ListUsers, protected...)
	e.GET("/users/email/:email/role", h.RoleByEmail, roleRead...)
	e.GET("/users/:user_id", h.GetUser, protected...)
	e.PATCH("/users/:user_id/role", h.SetUserRole, protected...)
	e.PATCH("/users/:user_id/suspension", h.SetUserSuspended, protected...)

	e.GET("/loans", h.ListLoans, protected...)
	e.GET("/loans/home", h.VisibleLoans, protected...)
	e.GET("/loans/:loan_id", h.GetLoan, protected...)
	e.POST("/loans", h.CreateLoan, protected...)
	e.PUT("/loans/:loan_id", h.UpdateLoan, protected...)
	e.PATCH("/loans/:loan_id/visibility", h.SetLoanVisibility, protected...)
	e.DELETE("/loans/:loan_id", h.DeleteLoan, protected...)

	e.POST("/applications", h.SubmitApplication, protected...)
	e.GET("/applications", h.ListApplications, protected...)
	e.GET("/applications/with-submitter", h.ApplicationsWithSubmitter, protected...)
	e.GET("/applications/:application_id", h.GetApplication, protected...)
	e.PATCH("/applications/:application_id/approve", h.ApproveApplication, protected...)
	e.PATCH("/applications/:application_id/reject", h.RejectApplication, protected...)
	e.PATCH("/applications/:application_id/cancel", h.CancelApplication, protected...)

	e.POST("/payments/checkout-session", h.CreateCheckoutSession, protected...)

	return e
}
