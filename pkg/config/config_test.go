package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_STORE", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.App.Store)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Billing.KegDepositPrice.Equal(decimal.NewFromInt(30)))
	assert.Empty(t, cfg.Packaging.TypesPath)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 10*time.Second, cfg.DB.ConnectTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_STORE", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KEG_DEPOSIT_PRICE", "45.50")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("DB_MAX_CONNS", "8")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "45.5", cfg.Billing.KegDepositPrice.String())
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, int32(8), cfg.DB.MaxConns)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("APP_STORE", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("APP_STORE", "memory")
	t.Setenv("KEG_DEPOSIT_PRICE", "thirty")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "brew", Password: "p@ss/word", DBName: "brewery", SSLMode: "disable"}
	assert.Equal(t, "postgres://brew:p%40ss%2Fword@db:5432/brewery?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
