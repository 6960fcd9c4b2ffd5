package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "public", cfg.Database.Schema)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 300, cfg.RateLimit.RequestsPerMinute)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_DATABASE", "catalog_db")
	t.Setenv("RATE_LIMIT_RPM", "60")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "catalog", cfg.Database.User)
	assert.Equal(t, "catalog_db", cfg.Database.Database)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
}
