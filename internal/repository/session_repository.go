package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

// GetSessionByToken looks up a session issued by the external auth service.
func (r *Repository) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `SELECT id, user_id, token, expires_at, created_at
	          FROM sessions WHERE token = $1`

	var s domain.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&s.ID,
		&s.UserID,
		&s.Token,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session by token: %w", err)
	}
	return &s, nil
}
