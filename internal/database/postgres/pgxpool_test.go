package postgres

import (
	"testing"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     "db",
		DBName:     "zidio",
		DBUser:     "app",
		DBPassword: "p@ss word",
	})
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/zidio?sslmode=disable", dsn)
}

func TestApplyPoolConfig(t *testing.T) {
	pcfg, err := pgxpool.ParseConfig(DSN(config.DatabaseConfig{DBHost: "localhost", DBName: "zidio", DBUser: "app"}))
	require.NoError(t, err)

	applyPoolConfig(pcfg, config.DatabaseConfig{
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        8,
		PoolMinConns:        20,
		PoolMaxConnLifetime: time.Hour,
	})

	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(8), pcfg.MaxConns)
	assert.NotEqual(t, int32(20), pcfg.MinConns)
	assert.Equal(t, time.Hour, pcfg.MaxConnLifetime)
}
