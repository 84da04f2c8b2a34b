package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+": service error", "error", err)
	} else {
		log.Warn(opName+": rejected", "error", err, "status", status)
	}

	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInput       = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError    = "Authentication required."

	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgTaskNotFoundError      = "Task not found"
	ErrMsgRewardNotFoundError    = "Reward not found"

	ErrMsgNotEnoughGoldError    = "Not enough gold"
	ErrMsgAlreadyCompletedError = "Task is already completed"
	ErrMsgNotAHabitError        = "Only habits can be logged"
	ErrMsgNotCompletableError   = "Habits are logged, not completed"
	ErrMsgNotADailyError        = "Streaks only apply to dailies"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages.
// Unknown errors become a generic 500 so internal details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Specific reasons first: they are joined with ErrInvalidArgument
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	case errors.Is(err, domain.ErrNotCompletable):
		return http.StatusBadRequest, ErrMsgNotCompletableError
	case errors.Is(err, domain.ErrNotAHabit):
		return http.StatusBadRequest, ErrMsgNotAHabitError
	case errors.Is(err, domain.ErrNotADaily):
		return http.StatusBadRequest, ErrMsgNotADailyError
	case errors.Is(err, domain.ErrInsufficientResources):
		return http.StatusBadRequest, insufficientGoldMessage(err)
	case errors.Is(err, domain.ErrTaskAlreadyCompleted):
		return http.StatusConflict, ErrMsgAlreadyCompletedError
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound, ErrMsgRewardNotFoundError
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, ErrMsgInvalidInput
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

func insufficientGoldMessage(err error) string {
	var goldErr *domain.InsufficientGoldError
	if errors.As(err, &goldErr) {
		return formatInsufficientGold(goldErr.Required, goldErr.Available)
	}
	return ErrMsgNotEnoughGoldError
}
