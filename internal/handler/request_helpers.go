package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/middleware"
)

// Clock returns the current time; handlers take one so tests can pin "now"
type Clock func() time.Time

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req PurchaseRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpPurchaseReward); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// requireUserID returns the caller's id placed in the context by the identity middleware.
// If ok is false, a 401 has already been written.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == middleware.EmptyUserID {
		respondServiceError(w, r, OpResolveUser, fmt.Errorf("%w: no user id in request context", domain.ErrNotAuthenticated))
		return "", false
	}
	return userID, true
}

// taskIDParam reads and validates the {taskID} path parameter.
// If ok is false, a 400 has already been written.
func taskIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := chi.URLParam(r, "taskID")
	if err := GetValidator().ValidateVar(taskID, "required,uuid"); err != nil {
		logger.FromContext(r.Context()).Warn("Invalid task id", "task_id", taskID)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTaskID)
		return "", false
	}
	return taskID, true
}
