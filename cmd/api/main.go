package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "loanlink-backend/internal/adapter/http"
	stripegw "loanlink-backend/internal/adapter/payment/stripe"
	"loanlink-backend/internal/config"
	"loanlink-backend/internal/infrastructure/cache"
	"loanlink-backend/internal/infrastructure/db"
	"loanlink-backend/internal/infrastructure/logger"
	"loanlink-backend/internal/infrastructure/metrics"
	"loanlink-backend/internal/infrastructure/readiness"
	"loanlink-backend/internal/usecase/payment"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const serviceName = "loanlink-api"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logg.Error(ctx, "invalid config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.IsDev(),
	})

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api stopped", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	rdb, err := cache.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		return err
	}
	var idem redis.Cmdable
	if rdb != nil {
		idem = rdb
		defer func() { _ = rdb.Close() }()
	} else {
		logg.Warn(ctx, "REDIS_ADDR not set, idempotency keys are ignored")
	}

	var gw payment.Gateway
	if g, err := stripegw.NewGateway(cfg.Stripe); err != nil {
		return err
	} else if g != nil {
		gw = g
		logg.Info(logg.WithField(ctx, "stripe_env", g.Environment()), "checkout sessions enabled")
	} else {
		logg.Warn(ctx, "STRIPE_API_KEY not set, checkout sessions are disabled")
	}

	gate := readiness.NewGate[*httpadp.Services]()
	e := httpadp.NewRouter(httpadp.RouterDeps{
		Config:   cfg,
		Log:      logg,
		Metrics:  m,
		Gatherer: reg,
		Redis:    idem,
		Gate:     gate,
	})

	var gdb *gorm.DB
	defer func() {
		if gdb == nil {
			return
		}
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + cfg.App.Port
		logg.Info(logg.WithField(gctx, "addr", addr), "starting api server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// storage comes up in the background; requests wait on the gate meanwhile
	g.Go(func() error {
		conn, err := db.Connect(gctx, cfg.DB, db.LogLevel(cfg.App.LogLevel), func(attempt uint64, err error) {
			logg.Warn(logg.WithField(gctx, "attempt", attempt), "database not reachable yet: "+err.Error())
		})
		if err != nil {
			return err
		}
		gdb = conn
		if cfg.App.AutoMigrate {
			if err := db.Migrate(conn); err != nil {
				return err
			}
		}
		gate.Open(httpadp.NewServices(conn, m, gw))
		logg.Info(gctx, "storage ready")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logg.Info(shutdownCtx, "shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
