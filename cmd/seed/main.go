package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/osse101/habitquest/internal/bootstrap"
	"github.com/osse101/habitquest/internal/character"
	"github.com/osse101/habitquest/internal/config"
	"github.com/osse101/habitquest/internal/database"
	"github.com/osse101/habitquest/internal/logger"
)

// seed upserts the reward catalog without starting the server
func main() {
	cfg := config.LoadDatabase()
	path := flag.String("catalog", cfg.CatalogPath, "path to the reward catalog YAML")
	flag.Parse()

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "habitquest-seed", config.DefaultVersion, config.DefaultEnvironment, false))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.DefaultPoolConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)
	// Catalog syncs publish no events
	svc := character.NewService(repos.Character, nil, character.DefaultConfig())

	n, err := bootstrap.SyncRewardCatalog(ctx, svc, *path)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	slog.Info("Seed complete", "rewards", n)
}
