package models

import (
	"fmt"
	"time"
)

// Session is a browser login session. The token is the opaque value stored in the session cookie.
type Session struct {
	token     string
	userID    string
	expiresAt time.Time
	createdAt time.Time
}

// NewSession creates a session for userID that expires after ttl.
func NewSession(token, userID string, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		token:     token,
		userID:    userID,
		expiresAt: now.Add(ttl),
		createdAt: now,
	}
}

// RestoreSession rebuilds a stored session.
func RestoreSession(token, userID string, expiresAt, createdAt time.Time) *Session {
	return &Session{token: token, userID: userID, expiresAt: expiresAt, createdAt: createdAt}
}

func (s *Session) ID() string           { return s.token }
func (s *Session) Token() string        { return s.token }
func (s *Session) UserID() string       { return s.userID }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.createdAt }

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

func (s *Session) Validate() error {
	if s.token == "" {
		return fmt.Errorf("session token is required")
	}
	if s.userID == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}
