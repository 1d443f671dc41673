package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

func TestSessionAuthMiddleware(t *testing.T) {
	store := &mockSessionStore{
		getFn: func(ctx context.Context, token string) (*domain.Session, error) {
			switch token {
			case "live-token":
				return &domain.Session{UserID: "cashier-1", Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
			case "stale-token":
				return &domain.Session{UserID: "cashier-1", Token: token, ExpiresAt: time.Now().Add(-time.Minute)}, nil
			case "boom-token":
				return nil, errors.New("db down")
			default:
				return nil, repository.ErrSessionNotFound
			}
		},
	}

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = getUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := SessionAuthMiddleware(store)(next)

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
	}{
		{name: "no header", authHeader: "", wantCode: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc123", wantCode: http.StatusUnauthorized},
		{name: "unknown token", authHeader: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "expired session", authHeader: "Bearer stale-token", wantCode: http.StatusUnauthorized},
		{name: "store failure", authHeader: "Bearer boom-token", wantCode: http.StatusInternalServerError},
		{name: "live session", authHeader: "Bearer live-token", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "cashier-1", seenUserID)
			} else {
				assert.Empty(t, seenUserID)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, getRequestID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestIDMiddleware(next)

	t.Run("generates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "terminal-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "terminal-42", rec.Header().Get("X-Request-ID"))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "case insensitive scheme", header: "bearer abc", want: "abc"},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "no token", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, bearerToken(req))
		})
	}
}
