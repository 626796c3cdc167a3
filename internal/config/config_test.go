package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_PortOutOfRange(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
}
