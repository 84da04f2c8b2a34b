package bootstrap

import (
	"log/slog"

	"github.com/osse101/habitquest/internal/config"
	"github.com/osse101/habitquest/internal/logger"
)

// SetupLogger initializes the default slog logger from the app configuration.
// Source locations are only attached in development.
func SetupLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version,
		"game_timezone", cfg.Location.String())

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"audit_enabled", cfg.AuditEnabled)
}
