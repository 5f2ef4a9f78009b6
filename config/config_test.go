package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_PORT", "APP_ENV", "LOG_LEVEL", "TIMEZONE",
	"REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "JWT_EXPIRY_HOURS", "AUTH_CLIENTS", "CORS_ALLOWED_ORIGINS",
	"GOOGLE_MAPS_API_KEY", "OPENWEATHER_API_KEY", "PROVIDER_TIMEOUT_MS", "CACHE_TTL_SEC",
	"TRACING_ENABLED", "RATE_LIMIT",
	"GOOGLE_MAPS_BASE_URL", "GOOGLE_ROADS_BASE_URL", "OPENWEATHER_BASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	v := viper.New()

	assert.Equal(t, "default", getEnv(v, "TEST_CONFIG_VAR", "default"))

	v.Set("TEST_CONFIG_VAR", "custom")
	assert.Equal(t, "custom", getEnv(v, "TEST_CONFIG_VAR", "default"))

	v.Set("TEST_CONFIG_VAR", "   ")
	assert.Equal(t, "default", getEnv(v, "TEST_CONFIG_VAR", "default"))
}

func TestGetIntEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		got, err := getIntEnv(viper.New(), "TEST_INT_VAR", 8080)
		require.NoError(t, err)
		assert.Equal(t, 8080, got)
	})

	t.Run("parses valid int", func(t *testing.T) {
		v := viper.New()
		v.Set("TEST_INT_VAR", "9090")
		got, err := getIntEnv(v, "TEST_INT_VAR", 8080)
		require.NoError(t, err)
		assert.Equal(t, 9090, got)
	})

	t.Run("error on invalid int", func(t *testing.T) {
		v := viper.New()
		v.Set("TEST_INT_VAR", "not_int")
		_, err := getIntEnv(v, "TEST_INT_VAR", 8080)
		assert.Error(t, err)
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "Europe/Istanbul", cfg.Server.Timezone)
	assert.Equal(t, "100-M", cfg.Server.RateLimit)
	assert.False(t, cfg.Server.IsDev())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Providers.Timeout())
	assert.Equal(t, 5*time.Minute, cfg.Providers.CacheTTL())
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfigCustom(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("JWT_EXPIRY_HOURS", "48")
	t.Setenv("AUTH_CLIENTS", "mobile:$2a$10$abc, web:$2a$10$def")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("OPENWEATHER_BASE_URL", "http://weather.local")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Server.IsDev())
	assert.Equal(t, "UTC", cfg.Server.Timezone)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	assert.Equal(t, 48, cfg.JWT.ExpiryHours)
	assert.Equal(t, map[string]string{"mobile": "$2a$10$abc", "web": "$2a$10$def"}, cfg.Auth.Clients)
	assert.True(t, cfg.Auth.Enabled())
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "http://weather.local", cfg.Providers.OpenWeatherBaseURL)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SERVER_PORT", "invalid"},
		{"REDIS_PORT", "six"},
		{"JWT_EXPIRY_HOURS", "1.5"},
		{"REDIS_ENABLED", "maybe"},
		{"AUTH_CLIENTS", "no-separator"},
		{"TIMEZONE", "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "accident-risk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_port: 9090
rate_limit: 10-S
redis_enabled: false
auth_clients: "mobile:$2a$10$abc"
`), 0o600))
	t.Setenv("RATE_LIMIT", "5-S")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "5-S", cfg.Server.RateLimit, "environment overrides the file")
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, map[string]string{"mobile": "$2a$10$abc"}, cfg.Auth.Clients)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoadConfigFileErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server_port: [1, 2"), 0o600))
	_, err = LoadConfigFile(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("server_port: eighty"), 0o600))
	_, err = LoadConfigFile(invalid)
	assert.Error(t, err)
}
