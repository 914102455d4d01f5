package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	defaultAccessTokenSecret  = "default_insecure_access_secret_please_change_this_!@#$"
	defaultRefreshTokenSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
)

// S3Config holds the object storage settings used for avatars and cover images.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StorageDriver  string
	MigrationsPath string
	RunMigrations  bool
	Port           string
	IsProduction   bool

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	JWTIssuer          string

	PasswordHashCost              int
	RevokeSessionOnPasswordChange bool

	CookieSecure bool
	CookieDomain string
	CORSOrigins  []string

	UploadTempDir   string
	MaxUploadSizeMB int64
	S3              S3Config

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ACCESS_TOKEN_SECRET", defaultAccessTokenSecret)
	v.SetDefault("ACCESS_TOKEN_EXPIRY", "1h")
	v.SetDefault("REFRESH_TOKEN_SECRET", defaultRefreshTokenSecret)
	v.SetDefault("REFRESH_TOKEN_EXPIRY", "240h")
	v.SetDefault("JWT_ISSUER", "user-accounts-backend")
	v.SetDefault("PASSWORD_HASH_COST", bcrypt.DefaultCost)
	v.SetDefault("REVOKE_SESSION_ON_PASSWORD_CHANGE", true)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("UPLOAD_TEMP_DIR", "./public/temp")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 8)
	v.SetDefault("S3_BUCKET", "media")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_PUBLIC_BASE_URL", "")
	v.SetDefault("S3_USE_PATH_STYLE", true)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")

	// Actual environment variables override .env values and defaults.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:                   v.GetString("PGSQL_URL"),
		StorageDriver:                 strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:                v.GetString("MIGRATIONS_PATH"),
		RunMigrations:                 v.GetBool("RUN_MIGRATIONS"),
		Port:                          v.GetString("PORT"),
		IsProduction:                  v.GetBool("IS_PRODUCTION"),
		AccessTokenSecret:             v.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:            v.GetString("REFRESH_TOKEN_SECRET"),
		JWTIssuer:                     v.GetString("JWT_ISSUER"),
		PasswordHashCost:              v.GetInt("PASSWORD_HASH_COST"),
		RevokeSessionOnPasswordChange: v.GetBool("REVOKE_SESSION_ON_PASSWORD_CHANGE"),
		CookieDomain:                  v.GetString("COOKIE_DOMAIN"),
		CORSOrigins:                   splitList(v.GetString("CORS_ORIGINS")),
		UploadTempDir:                 v.GetString("UPLOAD_TEMP_DIR"),
		MaxUploadSizeMB:               v.GetInt64("MAX_UPLOAD_SIZE_MB"),
		S3: S3Config{
			Bucket:        v.GetString("S3_BUCKET"),
			Region:        v.GetString("S3_REGION"),
			Endpoint:      v.GetString("S3_ENDPOINT"),
			AccessKey:     v.GetString("S3_ACCESS_KEY"),
			SecretKey:     v.GetString("S3_SECRET_KEY"),
			PublicBaseURL: strings.TrimRight(v.GetString("S3_PUBLIC_BASE_URL"), "/"),
			UsePathStyle:  v.GetBool("S3_USE_PATH_STYLE"),
		},
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
	}

	// Secure cookies follow IS_PRODUCTION unless set explicitly.
	cfg.CookieSecure = cfg.IsProduction
	if v.IsSet("COOKIE_SECURE") {
		cfg.CookieSecure = v.GetBool("COOKIE_SECURE")
	}

	var err error
	if cfg.AccessTokenExpiry, err = parsePositiveDuration(v, "ACCESS_TOKEN_EXPIRY"); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenExpiry, err = parsePositiveDuration(v, "REFRESH_TOKEN_EXPIRY"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.warnInsecureDefaults()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must not be empty")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.RefreshTokenExpiry <= c.AccessTokenExpiry {
		return fmt.Errorf("REFRESH_TOKEN_EXPIRY (%s) must be longer than ACCESS_TOKEN_EXPIRY (%s)", c.RefreshTokenExpiry, c.AccessTokenExpiry)
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("PGSQL_URL is required when STORAGE_DRIVER is postgres")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive, got %d", c.MaxUploadSizeMB)
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	return nil
}

func (c *Config) warnInsecureDefaults() {
	if c.AccessTokenSecret == defaultAccessTokenSecret || c.RefreshTokenSecret == defaultRefreshTokenSecret {
		if c.IsProduction {
			slog.Error("Default token secrets are in use in production. Set ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET.")
		} else {
			slog.Warn("Using default insecure token secrets. THIS IS NOT FOR PRODUCTION.")
		}
	}
	if c.S3.Endpoint == "" && c.S3.AccessKey == "" {
		slog.Warn("S3_ENDPOINT and S3_ACCESS_KEY not set, falling back to the default AWS credential chain")
	}
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
