package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

// SessionRepository persists login [models.Session] records.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidModel, err)
	}

	query := `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, session.Token(), session.UserID(), session.ExpiresAt(), session.CreatedAt()); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get returns the session for token. Expired sessions are reported as not found.
func (r *SessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	var (
		userID    string
		expiresAt time.Time
		createdAt time.Time
	)

	query := `SELECT user_id, expires_at, created_at FROM sessions WHERE token = ?`
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID, &expiresAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session := models.RestoreSession(token, userID, expiresAt, createdAt)
	if session.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: session expired", shared.ErrNotFound)
	}
	return session, nil
}

// Delete removes the session for token. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session that expired before now and returns how many were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
