package postgres_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/infrastructure/postgres"
	"github.com/jhoicas/brewery-api/pkg/config"
)

func TestPoolConfig_FromSettings(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5433, User: "brew", Password: "secret", DBName: "brewery", SSLMode: "disable",
		MaxConns: 10, MinConns: 3, ConnectTimeout: 5 * time.Second,
	}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "brewery", pc.ConnConfig.Database)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 5*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLWins(t *testing.T) {
	pc, err := postgres.PoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@primary:5432/prod?sslmode=disable",
		Host:        "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "primary", pc.ConnConfig.Host)
	assert.Equal(t, "prod", pc.ConnConfig.Database)
}

func TestPoolConfig_MinNeverAboveMax(t *testing.T) {
	pc, err := postgres.PoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@db:5432/brewery?sslmode=disable",
		MaxConns:    2,
		MinConns:    8,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), pc.MaxConns)
	assert.LessOrEqual(t, pc.MinConns, pc.MaxConns)
}

func TestPoolConfig_BadURL(t *testing.T) {
	_, err := postgres.PoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
