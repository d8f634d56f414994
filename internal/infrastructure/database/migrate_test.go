package database

import (
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsParse(t *testing.T) {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, int64(1), migrations[0].Version)
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, time.Second, BackoffDelay(time.Second, 1))
	assert.Equal(t, 2*time.Second, BackoffDelay(time.Second, 2))
	assert.Equal(t, 8*time.Second, BackoffDelay(time.Second, 4))
	assert.Equal(t, time.Second, BackoffDelay(time.Second, 0))
}

func TestDSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: 5432, Username: "catalog", Password: "pw", DBName: "books"}
	assert.Equal(t, "postgresql://catalog:pw@db:5432/books?sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}
