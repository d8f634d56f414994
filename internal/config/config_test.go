package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("DB_MAX_CONNECTIONS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.CORSOrigins)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("DB_PORT", "five")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_PORT")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("AUTH_ENABLED", "true")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "rotated")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadMinIO(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MinIO.Enabled)

	t.Setenv("MINIO_ENABLED", "true")
	t.Setenv("MINIO_BUCKET", "covers")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "covers", cfg.MinIO.Bucket)
	assert.Equal(t, "localhost:9000", cfg.MinIO.Endpoint)

	t.Setenv("MINIO_ENDPOINT", "")
	_, err = Load()
	assert.NoError(t, err, "blank env falls back to the default endpoint")
}
