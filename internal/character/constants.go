package character

import "time"

// Catalog cache defaults
const (
	DefaultCacheSize = 16
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgCharacterCreated   = "Character created"
	LogMsgRewardPurchased    = "Reward purchased"
	LogMsgCatalogSynced      = "Reward catalog synced"
	LogMsgCatalogCacheHit    = "Reward catalog served from cache"
	LogMsgServiceShutdown    = "Character service shutting down..."
	LogMsgServiceShutdownErr = "Failed to shut down character publisher"
)
