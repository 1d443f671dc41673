package domain

import "time"

// Session is a row issued by the external auth service. This backend only
// validates tokens against it; it never creates or refreshes sessions.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
