// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig
	Storage   StorageConfig
	Auth      AuthConfig
	AI        AIConfig
	Mail      MailConfig
	Events    EventsConfig
	Logging   LoggingConfig
	Jobs      JobsConfig
	Bootstrap BootstrapConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MetricsEnabled    bool
	AllowedOriginsCSV string
}

// Addr returns host:port for net.Listen.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// AllowedOrigins splits AllowedOriginsCSV. An empty list allows any origin.
func (h HTTPConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(h.AllowedOriginsCSV, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// StorageConfig locates the database and its encryption secret.
type StorageConfig struct {
	DBPath        string
	EncryptionKey string
}

// AuthConfig controls sessions and outgoing links.
type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
	// AppURL is the public URL of the web client, used in emails.
	AppURL string
}

// AIConfig points at an OpenAI-compatible chat completions API. The
// assessment service is disabled when BaseURL is empty.
type AIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// MailConfig selects the email provider. Without an API key emails are
// logged instead of sent.
type MailConfig struct {
	ResendAPIKey string
	From         string
}

// EventsConfig enables record event publishing when AMQPURL is set.
type EventsConfig struct {
	AMQPURL string
	Queue   string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level string
}

// JobsConfig controls background maintenance.
type JobsConfig struct {
	HousekeepingSchedule string
	HousekeepingTimeout  time.Duration
}

// BootstrapConfig creates an admin account on startup when both fields
// are set and the email is not yet registered.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

const (
	defaultHost                 = "0.0.0.0"
	defaultPort                 = 8080
	defaultReadTimeout          = 10 * time.Second
	defaultWriteTimeout         = 90 * time.Second
	defaultIdleTimeout          = 60 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
	defaultDBPath               = "./data/healthcoach.db"
	defaultJWTTTL               = 24 * time.Hour
	defaultAppURL               = "http://localhost:8080"
	defaultAIModel              = "gpt-4o-mini"
	defaultMailFrom             = "Health Coach <onboarding@resend.dev>"
	defaultEventsQueue          = "healthcoach.records"
	defaultLoggingLevel         = "info"
	defaultHousekeepingSchedule = "@hourly"
	defaultHousekeepingTimeout  = 2 * time.Minute
)

var (
	ErrMissingJWTSecret     = errors.New("JWT_SECRET is required")
	ErrMissingEncryptionKey = errors.New("HEALTH_ENCRYPTION_KEY is required")
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:              valueOrDefault("SERVER_HOST", defaultHost),
			MetricsEnabled:    parseBoolWithDefault("METRICS_ENABLED", true),
			AllowedOriginsCSV: os.Getenv("SERVER_ALLOWED_ORIGINS"),
		},
		Storage: StorageConfig{
			DBPath:        valueOrDefault("DB_PATH", defaultDBPath),
			EncryptionKey: os.Getenv("HEALTH_ENCRYPTION_KEY"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			AppURL:    strings.TrimRight(valueOrDefault("APP_URL", defaultAppURL), "/"),
		},
		AI: AIConfig{
			BaseURL: os.Getenv("AI_BASE_URL"),
			APIKey:  os.Getenv("AI_API_KEY"),
			Model:   valueOrDefault("AI_MODEL", defaultAIModel),
		},
		Mail: MailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			From:         valueOrDefault("MAIL_FROM", defaultMailFrom),
		},
		Events: EventsConfig{
			AMQPURL: os.Getenv("AMQP_URL"),
			Queue:   valueOrDefault("AMQP_QUEUE", defaultEventsQueue),
		},
		Logging: LoggingConfig{
			Level: valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
		},
		Jobs: JobsConfig{
			HousekeepingSchedule: valueOrDefault("HOUSEKEEPING_SCHEDULE", defaultHousekeepingSchedule),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key      string
		dst      *time.Duration
		fallback time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout, defaultReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout, defaultWriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout, defaultIdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout, defaultShutdownTimeout},
		{"JWT_TTL", &cfg.Auth.JWTTTL, defaultJWTTTL},
		{"HOUSEKEEPING_TIMEOUT", &cfg.Jobs.HousekeepingTimeout, defaultHousekeepingTimeout},
	}
	for _, d := range durations {
		v, err := parseDuration(d.key, d.fallback)
		if err != nil {
			return Config{}, err
		}
		*d.dst = v
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if cfg.Storage.EncryptionKey == "" {
		return Config{}, ErrMissingEncryptionKey
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
