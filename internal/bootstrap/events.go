package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and the resilient publisher
// services use to emit events. Events that exhaust their retries are appended to
// deadLetterPath, whose directory is created if missing.
func InitializeEventSystem(deadLetterPath string) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	reportDeadLetters(deadLetterPath)

	publisher, err := event.NewResilientPublisher(eventBus, EventMaxRetries, EventRetryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventMaxRetries,
		"retry_delay", EventRetryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, publisher, nil
}

// reportDeadLetters warns about events a previous run could not deliver
func reportDeadLetters(path string) {
	entries, err := event.ReadDeadLetters(path)
	if err != nil {
		slog.Warn(LogMsgDeadLetterUnreadable, "path", path, "error", err)
	}
	if len(entries) == 0 {
		return
	}
	slog.Warn(LogMsgDeadLettersPending,
		"path", path,
		"count", len(entries),
		"oldest", entries[0].Timestamp,
		"newest", entries[len(entries)-1].Timestamp)
}

// RegisterEventHandlers subscribes the event-driven metrics collector
func RegisterEventHandlers(bus event.Bus) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)
}
