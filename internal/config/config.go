package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Stars     StarsConfig
	Breaker   BreakerConfig
	Retry     RetryConfig
	Tracing   TracingConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	URLCheck  URLCheckConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8766"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// StarsConfig holds upstream GitHub Stars API configuration.
type StarsConfig struct {
	APIURL string `envconfig:"STARS_API_URL" default:"https://api-stars.github.com/"`
	Token  string `envconfig:"STARS_API_TOKEN" default:""`
}

// BreakerConfig holds circuit breaker thresholds for the upstream dependency.
type BreakerConfig struct {
	FailureThreshold int           `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	RecoveryTimeout  time.Duration `envconfig:"BREAKER_RECOVERY_TIMEOUT" default:"60s"`
	SuccessThreshold int           `envconfig:"BREAKER_SUCCESS_THRESHOLD" default:"2"`
}

// RetryConfig holds retry behavior for transport-level failures.
type RetryConfig struct {
	MaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	WaitMin     time.Duration `envconfig:"RETRY_WAIT_MIN" default:"500ms"`
	WaitMax     time.Duration `envconfig:"RETRY_WAIT_MAX" default:"8s"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	Enabled     bool   `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName string `envconfig:"TRACING_SERVICE_NAME" default:"github-stars-contrib-mcp"`
	Endpoint    string `envconfig:"TRACING_ENDPOINT" default:"localhost:6831"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds client-side rate limiting toward the upstream API.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"0"`
	Enabled           bool    `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// URLCheckConfig holds URL pre-validation configuration.
type URLCheckConfig struct {
	Enabled bool          `envconfig:"VALIDATE_URLS" default:"false"`
	Timeout time.Duration `envconfig:"URL_CHECK_TIMEOUT" default:"3s"`
	TTL     time.Duration `envconfig:"URL_CHECK_TTL" default:"1h"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8766",
			Host: "127.0.0.1",
		},
		Stars: StarsConfig{
			APIURL: "https://api-stars.github.com/",
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			RecoveryTimeout:  60 * time.Second,
			SuccessThreshold: 2,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			WaitMin:     500 * time.Millisecond,
			WaitMax:     8 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "github-stars-contrib-mcp",
			Endpoint:    "localhost:6831",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		URLCheck: URLCheckConfig{
			Enabled: false,
			Timeout: 3 * time.Second,
			TTL:     time.Hour,
		},
	}
}
