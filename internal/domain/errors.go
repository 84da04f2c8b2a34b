package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Argument errors
	ErrMsgInvalidArgument = "invalid argument"

	// Resource errors
	ErrMsgInsufficientResources = "insufficient resources"

	// Auth errors
	ErrMsgNotAuthenticated = "not authenticated"

	// Lookup errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgTaskNotFound      = "task not found"
	ErrMsgRewardNotFound    = "reward not found"

	// Task state errors
	ErrMsgTaskAlreadyCompleted = "task already completed"
	ErrMsgNotAHabit            = "task is not a habit"
	ErrMsgNotCompletable       = "habits are logged, not completed"
	ErrMsgNotADaily            = "task is not a daily"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidArgument covers malformed input: bad difficulty, level < 1, negative amounts,
	// malformed repeat patterns.
	ErrInvalidArgument = errors.New(ErrMsgInvalidArgument)

	// ErrInsufficientResources is returned when a purchase or deduction exceeds the balance.
	ErrInsufficientResources = errors.New(ErrMsgInsufficientResources)

	// ErrNotAuthenticated is returned when a request carries no usable user identity.
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)

	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrTaskNotFound      = errors.New(ErrMsgTaskNotFound)
	ErrRewardNotFound    = errors.New(ErrMsgRewardNotFound)

	ErrTaskAlreadyCompleted = errors.New(ErrMsgTaskAlreadyCompleted)
	ErrNotAHabit            = errors.New(ErrMsgNotAHabit)
	ErrNotCompletable       = errors.New(ErrMsgNotCompletable)
	ErrNotADaily            = errors.New(ErrMsgNotADaily)
)

// InsufficientGoldError reports the shortfall of a gold deduction.
type InsufficientGoldError struct {
	Required  int
	Available int
}

func (e *InsufficientGoldError) Error() string {
	return fmt.Sprintf("%s: gold required %d, available %d", ErrMsgInsufficientResources, e.Required, e.Available)
}

// Unwrap lets errors.Is match ErrInsufficientResources.
func (e *InsufficientGoldError) Unwrap() error {
	return ErrInsufficientResources
}
