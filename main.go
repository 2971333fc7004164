package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gostop/adapters/api"
	"gostop/adapters/postgres"
	"gostop/adapters/rng"
	"gostop/adapters/sim"
	"gostop/app"
	"gostop/internal"
	"gostop/internal/config"
	"gostop/internal/errors"
	"gostop/ports"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	appConfig, err := config.Load()
	if err != nil {
		logger.Error("configuration failed: %v", err)
		os.Exit(1)
	}

	repo, err := initRepository(appConfig, logger)
	if err != nil {
		logger.Error("database setup failed: %v", err)
		os.Exit(1)
	}

	estimator := sim.NewEstimator(rng.NewAdapter())
	sweeps := app.NewSweepService(estimator, repo)
	server := api.NewServer(sweeps, estimator, repo, appConfig.Simulation)

	addr := ":" + appConfig.Server.Port
	logger.Info("listening on %s (default n=%d, trials=%d)",
		addr, appConfig.Simulation.DefaultN, appConfig.Simulation.DefaultTrials)
	if err := http.ListenAndServe(addr, server); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}

// initRepository connects to PostgreSQL when DATABASE_URL is set. Without
// it the service runs purely in-memory.
func initRepository(appConfig *config.Config, logger *internal.Logger) (ports.SweepRepository, error) {
	if appConfig.Database.URL == "" {
		logger.Info("DATABASE_URL not set, sweep persistence disabled")
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, errors.Wrap(err, "schema bootstrap failed")
	}

	logger.Info("sweep persistence enabled")
	return postgres.NewSweepRepository(db), nil
}
