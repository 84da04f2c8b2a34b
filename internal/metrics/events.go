package metrics

import (
	"context"

	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.TaskCompleted,
		event.HabitLogged,
		event.LevelUp,
		event.CharacterDefeated,
		event.StreakMilestone,
		event.RewardPurchased,
		event.DailyAuditComplete,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func record(evt event.Event) error {
	switch evt.Type {
	case event.TaskCompleted:
		p, err := event.DecodePayload[event.TaskCompletedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		TasksCompleted.WithLabelValues(p.TaskType).Inc()
		XPAwarded.WithLabelValues(SourceTask).Add(float64(p.XPGained))
		if p.BonusXP > 0 {
			XPAwarded.WithLabelValues(SourceStreakBonus).Add(float64(p.BonusXP))
		}
		GoldAwarded.Add(float64(p.GoldGained))

	case event.HabitLogged:
		p, err := event.DecodePayload[event.HabitLoggedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		if p.Positive {
			HabitLogs.WithLabelValues(DirectionPositive).Inc()
			XPAwarded.WithLabelValues(SourceHabit).Add(float64(p.XPGained))
			GoldAwarded.Add(float64(p.GoldGained))
		} else {
			HabitLogs.WithLabelValues(DirectionNegative).Inc()
		}

	case event.LevelUp:
		p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		LevelUps.Add(float64(p.LevelsGained))

	case event.CharacterDefeated:
		Defeats.Inc()

	case event.StreakMilestone:
		StreakMilestones.Inc()

	case event.RewardPurchased:
		p, err := event.DecodePayload[event.RewardPurchasedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		Purchases.WithLabelValues(p.RewardName).Inc()
		GoldSpent.Add(float64(p.Price))

	case event.DailyAuditComplete:
		p, err := event.DecodePayload[event.DailyAuditCompletePayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		StreaksReset.Add(float64(p.StreaksReset))
		DailiesReopened.Add(float64(p.DailiesReopened))
	}
	return nil
}
