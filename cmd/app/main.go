package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/habitquest/internal/bootstrap"
	"github.com/osse101/habitquest/internal/character"
	"github.com/osse101/habitquest/internal/config"
	"github.com/osse101/habitquest/internal/database"
	"github.com/osse101/habitquest/internal/server"
	"github.com/osse101/habitquest/internal/task"
	"github.com/osse101/habitquest/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// @title habitquest API
// @version 1.0
// @description Progression and streak engine for a gamified task tracker.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bootstrap.SetupLogger(cfg)
	for _, w := range cfg.Warnings() {
		slog.Warn("Configuration warning", "warning", w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()
	connString := cfg.GetDBConnString()

	dbPool, err := database.NewPool(ctx, connString, database.PoolConfig{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxIdleTime,
		MaxConnLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.MigrateUp(ctx, connString); err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg.DeadLetterPath)
	if err != nil {
		return err
	}
	bootstrap.RegisterEventHandlers(bus)

	repos := bootstrap.InitializeRepositories(dbPool)
	taskService := task.NewService(repos.Task, publisher, cfg.Location)
	characterService := character.NewService(repos.Character, publisher, character.Config{
		CacheSize: cfg.CatalogCacheMax,
		CacheTTL:  cfg.CatalogCacheTTL,
	})

	if _, err := bootstrap.SyncRewardCatalog(ctx, characterService, cfg.CatalogPath); err != nil {
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Location:       cfg.Location,
	}, dbPool, taskService, characterService)

	components := bootstrap.ShutdownComponents{
		Server:             srv,
		TaskService:        taskService,
		CharacterService:   characterService,
		ResilientPublisher: publisher,
	}

	if cfg.AuditEnabled {
		auditWorker := worker.NewDailyAuditWorker(taskService, cfg.Location)
		// Catch up on any midnight missed while the service was down
		auditWorker.Trigger()
		auditWorker.Start()
		components.AuditWorker = auditWorker
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case runErr = <-serverErr:
		slog.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, components)

	return runErr
}
