package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setMemoryDriver(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setMemoryDriver(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, time.Hour, cfg.AccessTokenExpiry)
	assert.Equal(t, 240*time.Hour, cfg.RefreshTokenExpiry)
	assert.Equal(t, bcrypt.DefaultCost, cfg.PasswordHashCost)
	assert.True(t, cfg.RevokeSessionOnPasswordChange)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, int64(8), cfg.MaxUploadSizeMB)
	assert.NotEqual(t, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setMemoryDriver(t)
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "15m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "72h")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com/")
	t.Setenv("REVOKE_SESSION_ON_PASSWORD_CHANGE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 72*time.Hour, cfg.RefreshTokenExpiry)
	assert.True(t, cfg.CookieSecure, "secure cookies follow IS_PRODUCTION")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "https://cdn.example.com", cfg.S3.PublicBaseURL)
	assert.False(t, cfg.RevokeSessionOnPasswordChange)
}

func TestLoadConfig_CookieSecureExplicit(t *testing.T) {
	setMemoryDriver(t)
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadConfig_Rejections(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"same secrets", map[string]string{"ACCESS_TOKEN_SECRET": "s", "REFRESH_TOKEN_SECRET": "s"}},
		{"non positive access expiry", map[string]string{"ACCESS_TOKEN_EXPIRY": "0s"}},
		{"unparsable refresh expiry", map[string]string{"REFRESH_TOKEN_EXPIRY": "ten days"}},
		{"refresh not longer than access", map[string]string{"ACCESS_TOKEN_EXPIRY": "2h", "REFRESH_TOKEN_EXPIRY": "1h"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "redis"}},
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres", "PGSQL_URL": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMemoryDriver(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
