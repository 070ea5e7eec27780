package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Stripe StripeConfig
}

type AppConfig struct {
	Port         string        `envconfig:"APP_PORT" default:"8080"`
	Env          string        `envconfig:"APP_ENV" default:"dev"`
	LogLevel     string        `envconfig:"APP_LOG_LEVEL" default:"info"`
	LogFormat    string        `envconfig:"APP_LOG_FORMAT" default:"json"`
	CORSOrigins  []string      `envconfig:"APP_CORS_ORIGINS" default:"http://localhost:5173"`
	ReadyTimeout time.Duration `envconfig:"APP_READY_TIMEOUT" default:"5s"`
	AutoMigrate  bool          `envconfig:"APP_AUTO_MIGRATE" default:"true"`
}

type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"mysql"`
	// DSN overrides the host/port/name/user/pass fields when set.
	RawDSN string `envconfig:"DB_DSN"`
	Host   string `envconfig:"DB_HOST" default:"mysql"`
	Port   string `envconfig:"DB_PORT" default:"3306"`
	Name   string `envconfig:"DB_NAME" default:"loanlink"`
	User   string `envconfig:"DB_USER" default:"loanlink"`
	Pass   string `envconfig:"DB_PASS" default:"loanlink"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"30"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"10m"`
	ConnectAttempts uint64        `envconfig:"DB_CONNECT_ATTEMPTS" default:"8"`
}

type RedisConfig struct {
	// empty disables the idempotency middleware
	Addr     string        `envconfig:"REDIS_ADDR"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	IdempTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"300s"`
}

type AuthConfig struct {
	JWTSecret string        `envconfig:"AUTH_JWT_SECRET"`
	Issuer    string        `envconfig:"AUTH_JWT_ISSUER" default:"loanlink"`
	TokenTTL  time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
}

type StripeConfig struct {
	// empty disables checkout sessions
	APIKey      string `envconfig:"STRIPE_API_KEY"`
	Environment string `envconfig:"STRIPE_ENV" default:"test"`
	SuccessURL  string `envconfig:"STRIPE_SUCCESS_URL" default:"http://localhost:5173/payment/success"`
	CancelURL   string `envconfig:"STRIPE_CANCEL_URL" default:"http://localhost:5173/payment/cancelled"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	return &c, nil
}

func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.App.Port); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.App.Port, err)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("missing AUTH_JWT_SECRET")
	}
	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres:
		if c.DB.RawDSN != "" {
			return nil
		}
		if c.DB.Host == "" || c.DB.Port == "" || c.DB.Name == "" || c.DB.User == "" {
			return errors.New("missing database config (DB_HOST/PORT/NAME/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.DB.Port); err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", c.DB.Port, err)
		}
	case DriverSQLite:
		if c.DB.RawDSN == "" && c.DB.Name == "" {
			return errors.New("missing sqlite file (DB_DSN or DB_NAME)")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func (c *DBConfig) addr() string { return net.JoinHostPort(c.Host, c.Port) }

// DSN returns the connection string for the configured driver.
func (c *DBConfig) DSN() string {
	if c.RawDSN != "" {
		return c.RawDSN
	}
	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Pass, c.Name)
	case DriverSQLite:
		return c.Name + ".db"
	default:
		// parseTime needed for DATETIME; clientFoundRows so a no-op UPDATE still reports its match
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&clientFoundRows=true&charset=utf8mb4,utf8",
			c.User, c.Pass, c.addr(), c.Name)
	}
}

func (c *AppConfig) IsDev() bool { return strings.EqualFold(c.Env, "dev") }
