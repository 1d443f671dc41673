package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

// SessionStore validates bearer tokens issued by the external auth service.
type SessionStore interface {
	GetSessionByToken(ctx context.Context, token string) (*domain.Session, error)
}

// SessionAuthMiddleware rejects requests without a live session. Session
// issuance lives in the external auth service; this backend only reads the
// sessions table.
func SessionAuthMiddleware(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			session, err := store.GetSessionByToken(r.Context(), token)
			if errors.Is(err, repository.ErrSessionNotFound) {
				respondError(w, http.StatusUnauthorized, "invalid session token")
				return
			}
			if err != nil {
				respondError(w, http.StatusInternalServerError, "failed to validate session")
				return
			}
			if session.Expired(time.Now()) {
				respondError(w, http.StatusUnauthorized, "session expired")
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func getUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value("user_id").(string); ok {
		return userID
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}
