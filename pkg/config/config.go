package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for practice-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"3080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Redis configuration (import run locks; optional)
	Redis RedisConfig `yaml:"redis"`

	// Legacy-system import pipeline pacing
	Import ImportConfig `yaml:"import"`

	// Speech-to-text transcription proxy
	Transcription TranscriptionConfig `yaml:"transcription"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// EnableVerification controls whether JWT tokens are validated.
	// Set to false for local development without an auth server.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWKSEndpointsStr is a comma-separated list of issuer=jwks_url pairs.
	// Format: "issuer1=url1,issuer2=url2"
	JWKSEndpointsStr string `yaml:"jwks_endpoints" env:"JWKS_ENDPOINTS" env-default:"https://auth.stridephysio.com=https://auth.stridephysio.com/.well-known/jwks.json"`

	// JWKSEndpoints is the parsed map from JWKSEndpointsStr (not from config file).
	JWKSEndpoints map[string]string `yaml:"-"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"practice"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"practice_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`

	// Pooled connections are recycled after MaxConnLifetimeMinutes and
	// released after sitting idle for MaxConnIdleMinutes.
	MaxConnLifetimeMinutes int `yaml:"max_conn_lifetime_minutes" env:"PGMAX_CONN_LIFETIME_MINUTES" env-default:"60"`
	MaxConnIdleMinutes     int `yaml:"max_conn_idle_minutes" env:"PGMAX_CONN_IDLE_MINUTES" env-default:"30"`
}

// MaxConnLifetime returns the connection lifetime ceiling as a duration.
func (c *DatabaseConfig) MaxConnLifetime() time.Duration {
	return time.Duration(c.MaxConnLifetimeMinutes) * time.Minute
}

// MaxConnIdleTime returns the idle connection ceiling as a duration.
func (c *DatabaseConfig) MaxConnIdleTime() time.Duration {
	return time.Duration(c.MaxConnIdleMinutes) * time.Minute
}

// RedisConfig holds Redis connection configuration.
// Redis is optional: with no host configured, the import run lock falls back
// to an in-process lock (sufficient for a single-instance deployment).
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// ImportConfig holds pacing settings for the legacy-system import pipeline.
// The delays pace writes against the entity store and are tunable without
// touching stage logic.
type ImportConfig struct {
	// RecordDelayMs is the fixed delay after each record write.
	RecordDelayMs int `yaml:"record_delay_ms" env:"IMPORT_RECORD_DELAY_MS" env-default:"40"`
	// BurstPauseMs is the longer pause inserted every BurstSize records.
	BurstPauseMs int `yaml:"burst_pause_ms" env:"IMPORT_BURST_PAUSE_MS" env-default:"2000"`
	// BurstSize is how many records are written between burst pauses.
	BurstSize int `yaml:"burst_size" env:"IMPORT_BURST_SIZE" env-default:"50"`
	// LockTTLSeconds bounds how long a crashed run can hold the per-account
	// run lock before it expires.
	LockTTLSeconds int `yaml:"lock_ttl_seconds" env:"IMPORT_LOCK_TTL_SECONDS" env-default:"900"`
}

// RecordDelay returns the per-record delay as a duration.
func (c *ImportConfig) RecordDelay() time.Duration {
	return time.Duration(c.RecordDelayMs) * time.Millisecond
}

// BurstPause returns the burst pause as a duration.
func (c *ImportConfig) BurstPause() time.Duration {
	return time.Duration(c.BurstPauseMs) * time.Millisecond
}

// LockTTL returns the run lock TTL as a duration.
func (c *ImportConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// TranscriptionConfig holds settings for the speech-to-text proxy.
type TranscriptionConfig struct {
	// BaseURL is the OpenAI-compatible API base URL of the provider.
	BaseURL string `yaml:"base_url" env:"TRANSCRIPTION_BASE_URL" env-default:"https://api.openai.com/v1"`
	// APIKey authenticates against the provider.
	APIKey string `yaml:"-" env:"TRANSCRIPTION_API_KEY"` // Secret - not in YAML
	// Model is the transcription model name.
	Model string `yaml:"model" env:"TRANSCRIPTION_MODEL" env-default:"whisper-1"`

	// Retry policy for transient provider failures.
	MaxRetries     int     `yaml:"max_retries" env:"TRANSCRIPTION_MAX_RETRIES" env-default:"4"`
	InitialDelayMs int     `yaml:"initial_delay_ms" env:"TRANSCRIPTION_INITIAL_DELAY_MS" env-default:"500"`
	MaxDelayMs     int     `yaml:"max_delay_ms" env:"TRANSCRIPTION_MAX_DELAY_MS" env-default:"8000"`
	Multiplier     float64 `yaml:"multiplier" env:"TRANSCRIPTION_MULTIPLIER" env-default:"2.0"`

	// RetryStatusCodesStr is a comma-separated list of HTTP status codes that
	// are treated as transient. Anything else fails immediately.
	RetryStatusCodesStr string `yaml:"retry_status_codes" env:"TRANSCRIPTION_RETRY_STATUS_CODES" env-default:"429,500,502,503"`

	// RetryStatusCodes is the parsed form of RetryStatusCodesStr.
	RetryStatusCodes []int `yaml:"-"`
}

// InitialDelay returns the initial retry delay as a duration.
func (c *TranscriptionConfig) InitialDelay() time.Duration {
	return time.Duration(c.InitialDelayMs) * time.Millisecond
}

// MaxDelay returns the retry delay ceiling as a duration.
func (c *TranscriptionConfig) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}

// IsRetryableStatus reports whether the given HTTP status code is in the
// configured transient set.
func (c *TranscriptionConfig) IsRetryableStatus(code int) bool {
	for _, s := range c.RetryStatusCodes {
		if s == code {
			return true
		}
	}
	return false
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.parseComplexFields(); err != nil {
		return nil, fmt.Errorf("failed to parse config fields: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// parseComplexFields handles fields that need post-processing after loading.
func (c *Config) parseComplexFields() error {
	c.Auth.JWKSEndpoints = parseJWKSEndpoints(c.Auth.JWKSEndpointsStr)

	codes, err := parseStatusCodes(c.Transcription.RetryStatusCodesStr)
	if err != nil {
		return fmt.Errorf("invalid transcription retry status codes: %w", err)
	}
	c.Transcription.RetryStatusCodes = codes

	return nil
}

// parseJWKSEndpoints parses the JWKS endpoints string into a map.
// Format: "issuer1=url1,issuer2=url2"
func parseJWKSEndpoints(value string) map[string]string {
	endpoints := make(map[string]string)
	if value == "" {
		return endpoints
	}

	pairs := strings.Split(value, ",")
	for _, pair := range pairs {
		parts := strings.Split(pair, "=")
		if len(parts) == 2 {
			endpoints[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return endpoints
}

// parseStatusCodes parses a comma-separated status code list.
func parseStatusCodes(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}

	var codes []int
	for _, part := range strings.Split(value, ",") {
		code, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("not a status code: %q", part)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
