package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// UserIDKey is the context key for user ID
const UserIDKey contextKey = "user_id"

// WithUserID adds user ID to request context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID retrieves user ID from context
func GetUserID(ctx context.Context) string {
	if userID := ctx.Value(UserIDKey); userID != nil {
		if uid, ok := userID.(string); ok {
			return uid
		}
	}
	return EmptyUserID
}

type errorBody struct {
	Error string `json:"error"`
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message})
}

// parseUserID normalizes the X-User-ID header value. Failures wrap domain.ErrNotAuthenticated.
func parseUserID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == EmptyUserID {
		return EmptyUserID, fmt.Errorf("%w: %s", domain.ErrNotAuthenticated, ErrMsgMissingUserID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return EmptyUserID, fmt.Errorf("%w: %s: %w", domain.ErrNotAuthenticated, ErrMsgInvalidUserID, err)
	}
	return id.String(), nil
}

// RequireUser rejects requests without a UUID in the X-User-ID header and stores
// the normalized id in the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(HeaderUserID))
		userID, err := parseUserID(raw)
		if err != nil {
			log := logger.FromContext(r.Context())
			if raw == EmptyUserID {
				log.Warn(LogMsgMissingUserID, "path", r.URL.Path, "error", err)
				unauthorized(w, ErrMsgMissingUserID)
			} else {
				log.Warn(LogMsgInvalidUserID, "path", r.URL.Path, "error", err)
				unauthorized(w, ErrMsgInvalidUserID)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
