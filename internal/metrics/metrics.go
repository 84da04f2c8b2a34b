package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Progression Metrics
var (
	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameXPAwarded,
			Help:      HelpTextXPAwarded,
		},
		[]string{LabelSource},
	)

	GoldAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameGoldAwarded,
			Help:      HelpTextGoldAwarded,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLevelUps,
			Help:      HelpTextLevelUps,
		},
	)

	StreakMilestones = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStreakMilestones,
			Help:      HelpTextStreakMilestones,
		},
	)

	StreaksReset = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStreaksReset,
			Help:      HelpTextStreaksReset,
		},
	)

	DailiesReopened = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameDailiesReopened,
			Help:      HelpTextDailiesReopened,
		},
	)

	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePurchases,
			Help:      HelpTextPurchases,
		},
		[]string{LabelReward},
	)

	GoldSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameGoldSpent,
			Help:      HelpTextGoldSpent,
		},
	)

	Defeats = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameDefeats,
			Help:      HelpTextDefeats,
		},
	)

	HabitLogs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHabitLogs,
			Help:      HelpTextHabitLogs,
		},
		[]string{LabelDirection},
	)

	TasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTasksCompleted,
			Help:      HelpTextTasksCompleted,
		},
		[]string{LabelType},
	)

	AuditDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameAuditDurationSecs,
			Help:      HelpTextAuditDurationSecs,
			Buckets:   AuditDurationBuckets,
		},
	)
)
