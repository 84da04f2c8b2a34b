package worker

import "time"

// Scheduling windows for the daily audit
const (
	// Waits longer than this are split into a standby stage and a final approach
	StandbyThreshold = 1 * time.Hour
	// The standby timer wakes this long before midnight
	StandbyLead = 45 * time.Minute
	// A final timer firing earlier than this before midnight is re-armed
	EarlyWakeTolerance = 10 * time.Second
)

// Log messages for daily audit worker operations
const (
	LogMsgDailyAuditStarting        = "Daily audit starting"
	LogMsgDailyAuditCompleted       = "Daily audit completed"
	LogMsgDailyAuditFailed          = "Daily audit failed"
	LogMsgDailyAuditScheduled       = "Daily audit scheduled"
	LogMsgDailyAuditStandby         = "Daily audit standby"
	LogMsgDailyAuditManualTrigger   = "Daily audit manually triggered"
	LogMsgDailyAuditShutdown        = "Shutting down daily audit worker"
	LogMsgDailyAuditShutdownDone    = "Daily audit worker shutdown complete"
	LogMsgDailyAuditShutdownTimeout = "Daily audit worker shutdown timeout, cancelling in-flight audit"
)
