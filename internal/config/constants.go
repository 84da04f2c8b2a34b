package config

import "time"

const (
	// Configuration file paths
	ConfigPathRewards = "configs/rewards.yaml"
)

// Defaults applied when the environment leaves a value unset
const (
	DefaultPort             = "8080"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultEnvironment      = "dev"
	DefaultVersion          = "dev"
	DefaultDBUser           = "postgres"
	DefaultDBPassword       = "postgres"
	DefaultDBHost           = "localhost"
	DefaultDBPort           = "5432"
	DefaultDBName           = "habitquest"
	DefaultDBMaxConns       = 20
	DefaultDBMaxIdleTime    = 5 * time.Minute
	DefaultDBMaxLifetime    = 30 * time.Minute
	DefaultGameTimezone     = "UTC"
	DefaultCatalogCacheTTL  = 5 * time.Minute
	DefaultCatalogCacheSize = 16
	DefaultDeadLetterPath   = "logs/deadletter.jsonl"
)
