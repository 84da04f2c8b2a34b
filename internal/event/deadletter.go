package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osse101/habitquest/internal/logger"
)

// DeadLetterSchemaVersion versions the JSONL line format. Bump it when DeadLetterEntry changes.
const DeadLetterSchemaVersion = "1.0"

// maxDeadLetterLine bounds a single JSONL line when reading the file back
const maxDeadLetterLine = 1 << 20

// DeadLetterEntry is one event that could not be delivered after every retry
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSONL file
type DeadLetterWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewDeadLetterWriter opens path for appending, creating it and its directory if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create dead letter directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead letter file: %w", err)
	}
	return &DeadLetterWriter{f: f, enc: json.NewEncoder(f)}, nil
}

// Write records evt with the number of delivery attempts and the final error
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         evt,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	logger.FromContext(context.Background()).Warn("event_dead_lettered",
		"event_type", evt.Type,
		"attempts", attempts,
		"error", entry.LastError)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to write dead letter entry: %w", err)
	}
	return nil
}

// Close closes the underlying file
func (w *DeadLetterWriter) Close() error {
	return w.f.Close()
}

// ReadDeadLetters loads every entry in path. A missing file holds no entries.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open dead letter file: %w", err)
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxDeadLetterLine)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return entries, fmt.Errorf("dead letter line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read dead letter file: %w", err)
	}
	return entries, nil
}
