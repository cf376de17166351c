// seed applies the schema and loads the demo brewery into PostgreSQL.
//
// Usage: go run ./cmd/seed
// Connection settings come from the same environment as the API (DATABASE_URL or DB_*).
package main

import (
	"context"
	"time"

	"github.com/jhoicas/brewery-api/internal/infrastructure/postgres"
	"github.com/jhoicas/brewery-api/pkg/config"
	"github.com/jhoicas/brewery-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}
	if err := postgres.SeedDemo(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Str("db", cfg.DB.DBName).Msg("demo data loaded")
}
