package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("MOOD_BACKEND_JWT_SECRET", "test-secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "jwt", cfg.AuthMode)
	assert.Equal(t, 72, cfg.JWTTTLHours)
	assert.Equal(t, "gemini-pro", cfg.GeminiModel)
	assert.False(t, cfg.IsProduction())
}

func TestNewEnvOverrides(t *testing.T) {
	t.Setenv("MOOD_BACKEND_HTTP_PORT", "9090")
	t.Setenv("MOOD_BACKEND_DB_DRIVER", "memory")
	t.Setenv("MOOD_BACKEND_AUTH_MODE", "static")
	t.Setenv("MOOD_BACKEND_CORS_ORIGIN", "https://app.example.com")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.DBDriver)
	assert.Equal(t, "static", cfg.AuthMode)
	assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := NewForTesting()
		return cfg
	}

	t.Run("TestingDefaultsAreValid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("PostgresNeedsDSN", func(t *testing.T) {
		cfg := base()
		cfg.DBDriver = "postgres"
		assert.Error(t, cfg.Validate())

		cfg.PostgresDSN = "postgres://localhost/mood"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("SQLiteNeedsPath", func(t *testing.T) {
		cfg := base()
		cfg.DBDriver = "sqlite"
		cfg.SQLitePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := base()
		cfg.DBDriver = "etcd"
		assert.Error(t, cfg.Validate())
	})

	t.Run("JWTNeedsSecret", func(t *testing.T) {
		cfg := base()
		cfg.AuthMode = "jwt"
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())

		cfg.JWTSecret = "s3cret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("StaticAuthForbiddenInProduction", func(t *testing.T) {
		cfg := base()
		cfg.Environment = EnvProduction
		cfg.AuthMode = "static"
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownAuthMode", func(t *testing.T) {
		cfg := base()
		cfg.AuthMode = "ldap"
		assert.Error(t, cfg.Validate())
	})
}
