package config

import (
	"fmt"
	"strings"
	"time"

	"storefront-checkout/internal/pkg/errs"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Checkout  CheckoutConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8081"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotent-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig only carries what token validation needs. Tokens are issued elsewhere.
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type CheckoutConfig struct {
	AutoConfirmDelay time.Duration `envconfig:"CHECKOUT_AUTO_CONFIRM_DELAY" default:"30m"`
	CancelWindow     time.Duration `envconfig:"CHECKOUT_CANCEL_WINDOW" default:"30m"`
	IdempotencyTTL   time.Duration `envconfig:"CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

type SchedulerConfig struct {
	Enabled      bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
	PollInterval time.Duration `envconfig:"SCHEDULER_POLL_INTERVAL" default:"5s"`
	BatchSize    int32         `envconfig:"SCHEDULER_BATCH_SIZE" default:"20"`
	MaxAttempts  int32         `envconfig:"SCHEDULER_MAX_ATTEMPTS" default:"5"`
	LeaseTimeout time.Duration `envconfig:"SCHEDULER_LEASE_TIMEOUT" default:"2m"`
	RetryBackoff time.Duration `envconfig:"SCHEDULER_RETRY_BACKOFF" default:"30s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

const minSecretLength = 16

// Validate rejects settings envconfig accepts but checkout cannot run with.
func (c Config) Validate() error {
	var problems []string
	if len(c.JWT.Secret) < minSecretLength {
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d bytes", minSecretLength))
	}
	if c.Checkout.AutoConfirmDelay <= 0 {
		problems = append(problems, "CHECKOUT_AUTO_CONFIRM_DELAY must be positive")
	}
	if c.Checkout.CancelWindow <= 0 {
		problems = append(problems, "CHECKOUT_CANCEL_WINDOW must be positive")
	}
	if c.Checkout.IdempotencyTTL <= 0 {
		problems = append(problems, "CHECKOUT_IDEMPOTENCY_TTL must be positive")
	}
	if c.Scheduler.Enabled && c.Scheduler.PollInterval <= 0 {
		problems = append(problems, "SCHEDULER_POLL_INTERVAL must be positive")
	}
	if c.Scheduler.BatchSize < 1 {
		problems = append(problems, "SCHEDULER_BATCH_SIZE must be at least 1")
	}
	if c.Scheduler.MaxAttempts < 1 {
		problems = append(problems, "SCHEDULER_MAX_ATTEMPTS must be at least 1")
	}
	if len(problems) > 0 {
		return errs.Newf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: 5 * time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
			MinConns: 1,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-checkout-service",
			Duration: time.Hour,
		},
		Checkout: CheckoutConfig{
			AutoConfirmDelay: 30 * time.Minute,
			CancelWindow:     30 * time.Minute,
			IdempotencyTTL:   24 * time.Hour,
		},
		Scheduler: SchedulerConfig{
			Enabled:      false, // tests drive the sweeper by hand
			PollInterval: time.Second,
			BatchSize:    20,
			MaxAttempts:  3,
			LeaseTimeout: time.Minute,
			RetryBackoff: time.Second,
		},
	}
}
