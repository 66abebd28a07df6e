package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvFallbacks(t *testing.T) {
	assert.Equal(t, "fallback", getEnv("STOCKFLOW_TEST_UNSET_KEY", "fallback"))
	assert.Equal(t, 7, getEnvInt("STOCKFLOW_TEST_UNSET_KEY", 7))
	assert.False(t, getEnvBool("STOCKFLOW_TEST_UNSET_KEY", false))

	t.Setenv("STOCKFLOW_TEST_SET_KEY", "")
	assert.Equal(t, "", getEnv("STOCKFLOW_TEST_SET_KEY", "fallback"))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRODUCTS_BACKEND", "Postgres")
	t.Setenv("STOCKFLOW_API_URL", "https://api.example.com/")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")
	t.Setenv("POSTGRES_MAX_IDLE_CONNS", "9")

	cfg := LoadEnv()

	assert.Equal(t, BackendPostgres, cfg.Server.Backend)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.True(t, cfg.Logger.DisableCaller)
	assert.Equal(t, 9, cfg.Postgres.MaxIdleConns)
}

func TestLoadEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("POSTGRES_CONN_MAX_LIFETIME", "soon")
	t.Setenv("LOGGER_DISABLE_STACKTRACE", "maybe")

	cfg := LoadEnv()

	assert.Equal(t, 300, cfg.Postgres.ConnMaxLifetime)
	assert.True(t, cfg.Logger.DisableStacktrace)
}
