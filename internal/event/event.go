package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/habitquest/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types
const (
	TaskCompleted      Type = Type(domain.EventTypeTaskCompleted)
	HabitLogged        Type = Type(domain.EventTypeHabitLogged)
	LevelUp            Type = Type(domain.EventTypeLevelUp)
	CharacterDefeated  Type = Type(domain.EventTypeDefeated)
	StreakMilestone    Type = Type(domain.EventTypeStreakMilestone)
	RewardPurchased    Type = Type(domain.EventTypeRewardPurchased)
	DailyAuditComplete Type = Type(domain.EventTypeDailyAudit)
)

// Typed event payloads for type safety

// TaskCompletedPayloadV1 is the typed payload for task completion events
type TaskCompletedPayloadV1 struct {
	UserID     string `json:"user_id"`
	TaskID     string `json:"task_id"`
	TaskType   string `json:"task_type"`
	Difficulty string `json:"difficulty"`
	XPGained   int    `json:"xp_gained"`
	GoldGained int    `json:"gold_gained"`
	BonusXP    int    `json:"bonus_xp,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// HabitLoggedPayloadV1 is the typed payload for habit check-ins
type HabitLoggedPayloadV1 struct {
	UserID     string `json:"user_id"`
	TaskID     string `json:"task_id"`
	Positive   bool   `json:"positive"`
	XPGained   int    `json:"xp_gained"`
	GoldGained int    `json:"gold_gained"`
	HPLost     int    `json:"hp_lost"`
	Timestamp  int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for character level up events
type LevelUpPayloadV1 struct {
	UserID       string `json:"user_id"`
	OldLevel     int    `json:"old_level"`
	NewLevel     int    `json:"new_level"`
	LevelsGained int    `json:"levels_gained"`
	Source       string `json:"source,omitempty"`
}

// DefeatedPayloadV1 is the typed payload for character defeat events
type DefeatedPayloadV1 struct {
	UserID        string `json:"user_id"`
	GoldLost      int    `json:"gold_lost"`
	RemainingGold int    `json:"remaining_gold"`
	Timestamp     int64  `json:"timestamp"`
}

// StreakMilestonePayloadV1 is the typed payload for streak milestone events
type StreakMilestonePayloadV1 struct {
	UserID  string `json:"user_id"`
	TaskID  string `json:"task_id"`
	Streak  int    `json:"streak"`
	BonusXP int    `json:"bonus_xp"`
}

// RewardPurchasedPayloadV1 is the typed payload for shop purchases
type RewardPurchasedPayloadV1 struct {
	UserID        string `json:"user_id"`
	RewardID      string `json:"reward_id"`
	RewardName    string `json:"reward_name"`
	Price         int    `json:"price"`
	RemainingGold int    `json:"remaining_gold"`
}

// DailyAuditCompletePayloadV1 is the typed payload for daily audit events
type DailyAuditCompletePayloadV1 struct {
	AuditTime       time.Time `json:"audit_time"`
	Day             string    `json:"day"`
	StreaksReset    int       `json:"streaks_reset"`
	DailiesReopened int       `json:"dailies_reopened"`
	Skipped         int       `json:"skipped"`
}

// Type-safe event constructors

// NewTaskCompletedEvent creates a task completion event from a completion result
func NewTaskCompletedEvent(userID string, result domain.CompletionResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaskCompleted,
		Payload: TaskCompletedPayloadV1{
			UserID:     userID,
			TaskID:     result.Task.ID,
			TaskType:   string(result.Task.Type),
			Difficulty: string(result.Task.Difficulty),
			XPGained:   result.XPGained,
			GoldGained: result.GoldGained,
			BonusXP:    result.BonusXP,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewHabitLoggedEvent creates a habit check-in event
func NewHabitLoggedEvent(userID string, result domain.HabitResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HabitLogged,
		Payload: HabitLoggedPayloadV1{
			UserID:     userID,
			TaskID:     result.Log.TaskID,
			Positive:   result.Log.IsPositive,
			XPGained:   result.XPGained,
			GoldGained: result.GoldGained,
			HPLost:     result.HPLost,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewLevelUpEvent creates a character level up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:       userID,
			OldLevel:     oldLevel,
			NewLevel:     newLevel,
			LevelsGained: newLevel - oldLevel,
			Source:       source,
		},
		Metadata: map[string]interface{}{
			MetadataKeySource: source,
		},
	}
}

// NewDefeatedEvent creates a character defeat event
func NewDefeatedEvent(userID string, goldLost, remainingGold int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CharacterDefeated,
		Payload: DefeatedPayloadV1{
			UserID:        userID,
			GoldLost:      goldLost,
			RemainingGold: remainingGold,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewStreakMilestoneEvent creates a streak milestone event
func NewStreakMilestoneEvent(userID, taskID string, streak, bonusXP int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakMilestone,
		Payload: StreakMilestonePayloadV1{
			UserID:  userID,
			TaskID:  taskID,
			Streak:  streak,
			BonusXP: bonusXP,
		},
		Metadata: nil,
	}
}

// NewRewardPurchasedEvent creates a shop purchase event
func NewRewardPurchasedEvent(userID string, result domain.PurchaseResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardPurchased,
		Payload: RewardPurchasedPayloadV1{
			UserID:        userID,
			RewardID:      result.Reward.ID,
			RewardName:    result.Reward.Name,
			Price:         result.GoldSpent,
			RemainingGold: result.RemainingGold,
		},
		Metadata: nil,
	}
}

// NewDailyAuditCompleteEvent creates a daily audit complete event
func NewDailyAuditCompleteEvent(auditTime time.Time, report domain.AuditReport) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyAuditComplete,
		Payload: DailyAuditCompletePayloadV1{
			AuditTime:       auditTime,
			Day:             report.Day.Format(time.DateOnly),
			StreaksReset:    report.StreaksReset,
			DailiesReopened: report.DailiesReopened,
			Skipped:         report.Skipped,
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is what services use to emit events after their transaction commits
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously in subscription order
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
