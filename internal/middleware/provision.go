package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
)

// CharacterProvisioner creates a player's character on first use
type CharacterProvisioner interface {
	EnsureCharacter(ctx context.Context, userID string) (*domain.Character, error)
}

// EnsureCharacter makes sure the identified user owns a character before the
// request reaches a handler that mutates it. Must run after RequireUser.
func EnsureCharacter(p CharacterProvisioner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if _, err := p.EnsureCharacter(r.Context(), userID); err != nil {
				logger.FromContext(r.Context()).Error(LogMsgProvisionFailed, "user_id", userID, "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(errorBody{Error: ErrMsgProvisionFailed})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
