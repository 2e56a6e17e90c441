package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/travelmate")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/travelmate", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "KRW", cfg.BaseCurrency)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/travelmate")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("BASE_CURRENCY", " usd ")
	t.Setenv("IDEMPOTENCY_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, 90*time.Minute, cfg.IdempotencyTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"DATABASE_URL": ""}},
		{name: "bad port", env: map[string]string{"DATABASE_URL": "postgres://db", "PORT": "eighty"}},
		{name: "bad base currency", env: map[string]string{"DATABASE_URL": "postgres://db", "BASE_CURRENCY": "WON!"}},
		{name: "zero ttl", env: map[string]string{"DATABASE_URL": "postgres://db", "IDEMPOTENCY_TTL": "0s"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
