package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{Server: ServerConfig{AppEnv: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{Server: ServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "release mode",
			config:   &Config{Server: ServerConfig{GinMode: "release", AppEnv: "production"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Server: ServerConfig{AppEnv: "production"}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{AppEnv: "staging"}}).IsProduction())
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", AllowedOrigins: []string{"http://localhost:5173"}},
		Database: DatabaseConfig{URL: "postgres://localhost/impulso"},
		Notifier: NotifierConfig{Workers: 1, QueueSize: 10},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid minimal config",
			mutate: func(c *Config) {},
		},
		{
			name:     "missing database URL",
			mutate:   func(c *Config) { c.Database.URL = "" },
			errorMsg: "DATABASE_URL is required",
		},
		{
			name:     "missing CORS origins",
			mutate:   func(c *Config) { c.Server.AllowedOrigins = nil },
			errorMsg: "ALLOWED_CORS_ORIGINS is required",
		},
		{
			name:     "admin email without hash",
			mutate:   func(c *Config) { c.Admin.Email = "admin@impulso.com" },
			errorMsg: "must be set together",
		},
		{
			name: "admin with short secret",
			mutate: func(c *Config) {
				c.Admin.Email = "admin@impulso.com"
				c.Admin.PasswordHash = "$2a$10$hash"
				c.Admin.JWTSecret = "short"
			},
			errorMsg: "ADMIN_JWT_SECRET",
		},
		{
			name: "admin fully configured",
			mutate: func(c *Config) {
				c.Admin.Email = "admin@impulso.com"
				c.Admin.PasswordHash = "$2a$10$hash"
				c.Admin.JWTSecret = strings.Repeat("s", 32)
			},
		},
		{
			name:     "zero notifier workers",
			mutate:   func(c *Config) { c.Notifier.Workers = 0 },
			errorMsg: "NOTIFIER_WORKERS",
		},
		{
			name:     "profiling without endpoint",
			mutate:   func(c *Config) { c.Profiling.Enabled = true },
			errorMsg: "O11Y_PROFILING_ENDPOINT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_FeatureToggles(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.AdminEnabled())
	assert.False(t, cfg.NotificationsEnabled())
	assert.False(t, cfg.StorageEnabled())

	cfg.Admin.Email = "admin@impulso.com"
	cfg.Admin.PasswordHash = "$2a$10$hash"
	cfg.WhatsApp.APIURL = "https://evolution.example.com/message/sendText/impulso"
	cfg.WhatsApp.APIKey = "key"
	cfg.Storage.BucketName = "fotos"
	cfg.Storage.AccessKeyID = "id"
	cfg.Storage.SecretAccessKey = "secret"

	assert.True(t, cfg.AdminEnabled())
	assert.True(t, cfg.NotificationsEnabled())
	assert.True(t, cfg.StorageEnabled())
}

func chdirTemp(t *testing.T) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
}

func TestLoad_WithDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/impulso")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 300, cfg.Cache.MentorTTLSeconds)
	assert.Equal(t, 2, cfg.Notifier.Workers)
	assert.Equal(t, 100, cfg.Notifier.QueueSize)
	assert.Equal(t, 8, cfg.Admin.SessionTTLHours)
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "postgres://db/impulso")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ALLOWED_CORS_ORIGINS", "http://localhost:5173, https://impulso.example.com ,")
	t.Setenv("ADMIN_EMAIL", "admin@impulso.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("ADMIN_JWT_SECRET", strings.Repeat("x", 40))
	t.Setenv("EVOLUTION_API_URL", "https://evolution.example.com/message/sendText/impulso")
	t.Setenv("EVOLUTION_API_KEY", "evo-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"http://localhost:5173", "https://impulso.example.com"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.AdminEnabled())
	assert.True(t, cfg.NotificationsEnabled())
	assert.Equal(t, "evo-key", cfg.WhatsApp.APIKey)
}

func TestLoad_ValidationFailure(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
