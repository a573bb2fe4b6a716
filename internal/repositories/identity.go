package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

// IdentityRepository persists [models.SocialIdentity] records. Extra data is stored as a JSON object.
type IdentityRepository struct {
	db *sql.DB
}

// NewIdentityRepository creates a new [IdentityRepository] with the given database connection
func NewIdentityRepository(db *sql.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

const identityColumns = `id, user_id, provider, uid, extra_data, created_at, updated_at`

// Find returns the identity linking userID to provider.
func (r *IdentityRepository) Find(ctx context.Context, userID, provider string) (*models.SocialIdentity, error) {
	query := `SELECT ` + identityColumns + ` FROM social_identities WHERE user_id = ? AND provider = ?`

	identity, err := scanIdentity(r.db.QueryRowContext(ctx, query, userID, provider))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s identity for user %s", shared.ErrNotFound, provider, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query identity: %w", err)
	}
	return identity, nil
}

// FindByUID returns the identity for the provider account uid.
func (r *IdentityRepository) FindByUID(ctx context.Context, provider, uid string) (*models.SocialIdentity, error) {
	query := `SELECT ` + identityColumns + ` FROM social_identities WHERE provider = ? AND uid = ?`

	identity, err := scanIdentity(r.db.QueryRowContext(ctx, query, provider, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s identity %s", shared.ErrNotFound, provider, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query identity: %w", err)
	}
	return identity, nil
}

// Save inserts identity when it has no ID yet and otherwise replaces its stored extra data.
//
// The update is a single statement, so the access and refresh tokens are always replaced together.
func (r *IdentityRepository) Save(ctx context.Context, identity *models.SocialIdentity) error {
	if err := identity.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidModel, err)
	}

	extra, err := json.Marshal(identity.ExtraData())
	if err != nil {
		return fmt.Errorf("failed to encode extra data: %w", err)
	}

	now := time.Now().UTC()

	if identity.ID() == "" {
		id := shared.GenerateID()
		query := `
			INSERT INTO social_identities (` + identityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := r.db.ExecContext(ctx, query, id, identity.UserID(), identity.Provider(), identity.UID(), string(extra), identity.CreatedAt(), now); err != nil {
			return fmt.Errorf("failed to insert identity: %w", err)
		}
		identity.SetID(id)
		identity.SetUpdatedAt(now)
		return nil
	}

	query := `
		UPDATE social_identities
		SET extra_data = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, string(extra), now, identity.ID())
	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}
	if err := expectRows(result, "identity", identity.ID()); err != nil {
		return err
	}

	identity.SetUpdatedAt(now)
	return nil
}

// Delete permanently removes the identity.
func (r *IdentityRepository) Delete(ctx context.Context, identity *models.SocialIdentity) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM social_identities WHERE id = ?`, identity.ID())
	if err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return expectRows(result, "identity", identity.ID())
}

func scanIdentity(row scanner) (*models.SocialIdentity, error) {
	var (
		id        string
		userID    string
		provider  string
		uid       string
		extraJSON string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &userID, &provider, &uid, &extraJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	extra := map[string]any{}
	if extraJSON != "" {
		if err := json.Unmarshal([]byte(extraJSON), &extra); err != nil {
			return nil, fmt.Errorf("failed to decode extra data for identity %s: %w", id, err)
		}
	}

	identity := models.NewSocialIdentity(userID, provider, uid)
	identity.SetID(id)
	identity.SetExtraData(extra)
	identity.SetCreatedAt(createdAt)
	identity.SetUpdatedAt(updatedAt)
	return identity, nil
}
