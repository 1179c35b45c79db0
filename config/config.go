package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment represents the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the complete application configuration
type Config struct {
	Environment Environment `json:"environment" env:"GLIDESCORE_ENV"`

	Server    ServerConfig    `json:"server"`
	Storage   StorageConfig   `json:"storage"`
	Logging   LoggingConfig   `json:"logging"`
	Telemetry TelemetryConfig `json:"telemetry"`
	Security  SecurityConfig  `json:"security"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Address           string        `json:"address" env:"GLIDESCORE_SERVER_ADDR"`
	CORSOrigin        string        `json:"cors_origin" env:"GLIDESCORE_SERVER_CORS_ORIGIN"`
	RequestTimeout    time.Duration `json:"request_timeout" env:"GLIDESCORE_SERVER_REQUEST_TIMEOUT"`
	ReadTimeout       time.Duration `json:"read_timeout" env:"GLIDESCORE_SERVER_READ_TIMEOUT"`
	WriteTimeout      time.Duration `json:"write_timeout" env:"GLIDESCORE_SERVER_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `json:"idle_timeout" env:"GLIDESCORE_SERVER_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" env:"GLIDESCORE_SERVER_READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout" env:"GLIDESCORE_SERVER_SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects and configures the score store
type StorageConfig struct {
	// Adapter is "file" or "memory".
	Adapter string `json:"adapter" env:"GLIDESCORE_STORAGE_ADAPTER"`
	// Path is the scores file location for the file adapter.
	Path string `json:"path" env:"GLIDESCORE_STORAGE_PATH"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" env:"GLIDESCORE_LOG_LEVEL"`
	Format string `json:"format" env:"GLIDESCORE_LOG_FORMAT"`
}

// TelemetryConfig holds tracing configuration. An empty endpoint disables
// span export entirely.
type TelemetryConfig struct {
	Endpoint string `json:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// SecurityConfig holds rate limiting configuration
type SecurityConfig struct {
	EnableRateLimit bool `json:"enable_rate_limit" env:"GLIDESCORE_RATE_LIMIT_ENABLED"`
	RateLimitRPM    int  `json:"rate_limit_rpm" env:"GLIDESCORE_RATE_LIMIT_RPM"`
	RateLimitBurst  int  `json:"rate_limit_burst" env:"GLIDESCORE_RATE_LIMIT_BURST"`
}

// DefaultConfig returns a configuration with sensible defaults for development
func DefaultConfig() *Config {
	return &Config{
		Environment: EnvDevelopment,
		Server: ServerConfig{
			Address:           ":8080",
			CORSOrigin:        "*",
			RequestTimeout:    30 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   30 * time.Second,
		},
		Storage: StorageConfig{
			Adapter: "file",
			Path:    "./data/scores.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			EnableRateLimit: false,
			RateLimitRPM:    120,
			RateLimitBurst:  20,
		},
	}
}

// Load loads configuration from environment variables and validates it.
// Unset variables leave the defaults untouched.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON file. Environment variables
// override file values, which override the defaults.
func LoadFromFile(path string) (*Config, error) {
	if err := validateConfigPath(path); err != nil {
		return nil, fmt.Errorf("invalid config file path: %w", err)
	}
	data, err := os.ReadFile(path) // #nosec G304 - Path validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// validateConfigPath validates that the config file path is safe
func validateConfigPath(path string) error {
	if path == "" {
		return errors.New("config file path cannot be empty")
	}
	cleanPath := filepath.Clean(path)
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return errors.New("config file must have .json extension")
	}
	if _, err := os.Stat(cleanPath); err != nil {
		return fmt.Errorf("config file not accessible: %w", err)
	}
	return nil
}

// Validate validates the configuration and returns detailed error messages
func (c *Config) Validate() error {
	var errs []string

	if c.Environment == "" {
		errs = append(errs, "environment cannot be empty")
	}
	if c.Server.Address == "" {
		errs = append(errs, "server config: address cannot be empty")
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":        c.Server.ReadTimeout,
		"write_timeout":       c.Server.WriteTimeout,
		"idle_timeout":        c.Server.IdleTimeout,
		"read_header_timeout": c.Server.ReadHeaderTimeout,
		"shutdown_timeout":    c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Sprintf("server config: %s must be > 0", name))
		}
	}
	switch c.Storage.Adapter {
	case "file":
		if c.Storage.Path == "" {
			errs = append(errs, "storage config: path cannot be empty for the file adapter")
		}
	case "memory":
	default:
		errs = append(errs, fmt.Sprintf("storage config: unknown adapter %q", c.Storage.Adapter))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging config: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("logging config: unknown format %q", c.Logging.Format))
	}
	if c.Security.EnableRateLimit {
		if c.Security.RateLimitRPM <= 0 {
			errs = append(errs, "security config: rate_limit_rpm must be > 0 when rate limiting is enabled")
		}
		if c.Security.RateLimitBurst <= 0 {
			errs = append(errs, "security config: rate_limit_burst must be > 0 when rate limiting is enabled")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
