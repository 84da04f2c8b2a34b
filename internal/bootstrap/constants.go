package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventMaxRetries is the number of retry attempts for failed event publishing
	EventMaxRetries = 5

	// EventRetryDelay is the base delay between retry attempts (exponential backoff)
	EventRetryDelay = 2 * time.Second
)

// Log messages for startup
const (
	LogMsgStarting                   = "Starting habitquest"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgDeadLettersPending         = "Undelivered events found in dead-letter file"
	LogMsgDeadLetterUnreadable       = "Dead-letter file could not be fully read"
	LogMsgSyncingCatalog             = "Syncing reward catalog from config..."
	LogMsgCatalogSynced              = "Reward catalog synced"
)

// Error messages for startup
const (
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedLoadCatalog              = "failed to load reward catalog"
	ErrMsgFailedSyncCatalog              = "failed to sync reward catalog to database"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgAuditWorkerShutdownFailed  = "Daily audit worker shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgServiceShutdownFailed      = " service shutdown failed"

	// Service names for shutdown logging
	ServiceNameTask      = "task"
	ServiceNameCharacter = "character"
)
