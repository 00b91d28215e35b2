package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "zidio-connect")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoadFrom_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFrom(newViper())
	require.NoError(t, err)

	assert.Equal(t, "zidio-connect", cfg.App.AppName)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.DBHost)
	assert.Equal(t, int32(10), cfg.Database.PoolMaxConns)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "job_posts", cfg.Search.Index)
	assert.Empty(t, cfg.Search.Addresses)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "migrations", cfg.App.MigrationsDir)
	assert.Equal(t, "Platform Admin", cfg.Seed.AdminName)
	assert.Empty(t, cfg.Seed.AdminEmail)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ELASTICSEARCH_ADDRESSES", "http://es1:9200, http://es2:9200,")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "5m")
	t.Setenv("LOG_FORMAT", "Console")
	t.Setenv("MAIL_FROM", "noreply@zidio.in")

	cfg, err := LoadFrom(newViper())
	require.NoError(t, err)

	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Search.Addresses)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "noreply@zidio.in", cfg.Mail.From)
}

func TestLoadFrom_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_NAME", "")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := LoadFrom(newViper())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}
