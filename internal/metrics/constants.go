package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric exported by the service
const Namespace = "habitquest"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Progression metric names
const (
	MetricNameXPAwarded         = "xp_awarded_total"
	MetricNameGoldAwarded       = "gold_awarded_total"
	MetricNameLevelUps          = "level_ups_total"
	MetricNameStreakMilestones  = "streak_milestones_total"
	MetricNameStreaksReset      = "streaks_reset_total"
	MetricNameDailiesReopened   = "dailies_reopened_total"
	MetricNamePurchases         = "purchases_total"
	MetricNameGoldSpent         = "gold_spent_total"
	MetricNameDefeats           = "defeats_total"
	MetricNameHabitLogs         = "habit_logs_total"
	MetricNameTasksCompleted    = "tasks_completed_total"
	MetricNameAuditDurationSecs = "daily_audit_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Progression metric help text
const (
	HelpTextXPAwarded         = "Total XP awarded, by source"
	HelpTextGoldAwarded       = "Total gold awarded from tasks and habits"
	HelpTextLevelUps          = "Total number of levels gained"
	HelpTextStreakMilestones  = "Total number of streak milestones reached"
	HelpTextStreaksReset      = "Total number of streaks reset by the daily audit"
	HelpTextDailiesReopened   = "Total number of dailies reopened by the daily audit"
	HelpTextPurchases         = "Total number of rewards purchased"
	HelpTextGoldSpent         = "Total gold spent in the shop"
	HelpTextDefeats           = "Total number of character defeats"
	HelpTextHabitLogs         = "Total number of habit check-ins, by direction"
	HelpTextTasksCompleted    = "Total number of completed tasks, by type"
	HelpTextAuditDurationSecs = "Duration of the daily audit in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelSource    = "source"
	LabelDirection = "direction"
	LabelReward    = "reward"
)

// Label values
const (
	DirectionPositive = "positive"
	DirectionNegative = "negative"
	SourceTask        = "task_completion"
	SourceHabit       = "habit_log"
	SourceStreakBonus = "streak_milestone"
	PathUnmatched     = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// AuditDurationBuckets covers audits from a few milliseconds to two minutes
var AuditDurationBuckets = []float64{.01, .05, .1, .5, 1, 5, 15, 30, 60, 120}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
