package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"HORST_DB_PATH" envDefault:"./data/horsthomes.db"`
	SessionSecret string `env:"HORST_SESSION_SECRET,required"`
	ServerHost    string `env:"HORST_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"HORST_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"HORST_ENV" envDefault:"development"`
	LogLevel      string `env:"HORST_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"HORST_UPLOADS_DIR" envDefault:"./uploads"`

	// PublicBaseURL is the externally visible base URL used when resolving
	// public URLs for locally stored uploads.
	PublicBaseURL string `env:"HORST_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// AdminEmailDomain qualifies bare login identifiers into email addresses,
	// e.g. "horst" -> "horst@admin.timhorst.com".
	AdminEmailDomain string `env:"HORST_ADMIN_EMAIL_DOMAIN" envDefault:"admin.timhorst.com"`

	// S3 object storage configuration. When S3Endpoint is set the S3 adapter
	// is used instead of local disk storage.
	S3Endpoint     string `env:"HORST_S3_ENDPOINT"`
	S3Region       string `env:"HORST_S3_REGION" envDefault:"us-east-1"`
	S3AccessKey    string `env:"HORST_S3_ACCESS_KEY"`
	S3SecretKey    string `env:"HORST_S3_SECRET_KEY"`
	S3PublicPrefix string `env:"HORST_S3_PUBLIC_PREFIX"` // public URL prefix, defaults to endpoint

	// Cache configuration
	RedisURL     string `env:"HORST_REDIS_URL"`                        // Optional Redis URL for the listing cache
	CachePrefix  string `env:"HORST_CACHE_PREFIX" envDefault:"horst:"` // Redis key prefix
	CacheTTL     int    `env:"HORST_CACHE_TTL" envDefault:"60"`        // Listing cache TTL in seconds

	// SweepSchedule is the cron spec for the orphaned-upload sweep.
	// Empty disables the sweep.
	SweepSchedule string `env:"HORST_SWEEP_SCHEDULE" envDefault:"0 3 * * *"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseS3 returns true if the S3 object storage adapter is configured.
func (c Config) UseS3() bool {
	return c.S3Endpoint != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("HORST_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("HORST_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("HORST_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
