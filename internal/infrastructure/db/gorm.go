package db

import (
	"context"
	"fmt"
	"time"

	"loanlink-backend/internal/config"
	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/user"

	"github.com/sethvargo/go-retry"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for the configured backend.
func Dialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL, "":
		return mysql.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.New(postgres.Config{DSN: cfg.DSN(), PreferSimpleProtocol: true}), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

func OpenGorm(cfg config.DBConfig, level logger.LogLevel) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := OpenGormWithDialector(dial, level)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	return db, nil
}

// OpenGormWithDialector opens and pings; split out so tests can pass a mocked connection.
func OpenGormWithDialector(dial gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(level),
		NowFunc:              func() time.Time { return time.Now().UTC() },
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Connect keeps opening the database with capped exponential backoff until it
// answers a ping, the attempts run out or ctx is cancelled.
func Connect(ctx context.Context, cfg config.DBConfig, level logger.LogLevel, onRetry func(attempt uint64, err error)) (*gorm.DB, error) {
	if _, err := Dialector(cfg); err != nil {
		return nil, err
	}
	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}
	b := retry.NewExponential(500 * time.Millisecond)
	b = retry.WithCappedDuration(10*time.Second, b)
	b = retry.WithMaxRetries(attempts-1, b)

	var (
		out     *gorm.DB
		attempt uint64
	)
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		db, err := OpenGorm(cfg, level)
		if err != nil {
			if onRetry != nil {
				onRetry(attempt, err)
			}
			return retry.RetryableError(err)
		}
		out = db
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s after %d attempt(s): %w", cfg.Driver, attempt, err)
	}
	return out, nil
}

// Migrate creates or updates the users, loans and applications tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &loan.Loan{}, &application.Application{})
}

// LogLevel maps the app log level onto gorm's logger.
func LogLevel(appLevel string) logger.LogLevel {
	switch appLevel {
	case "debug", "trace":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	case "disabled":
		return logger.Silent
	default:
		return logger.Warn
	}
}
