package services

import (
	"context"

	"github.com/desertthunder/scplayer/internal/models"
)

// IdentityStore persists the SoundCloud identities that carry a user's OAuth tokens.
type IdentityStore interface {
	// Find returns the identity linking userID to provider, or an error wrapping [shared.ErrNotFound].
	Find(ctx context.Context, userID, provider string) (*models.SocialIdentity, error)

	// Save inserts or updates the identity.
	Save(ctx context.Context, identity *models.SocialIdentity) error

	// Delete removes the identity.
	Delete(ctx context.Context, identity *models.SocialIdentity) error
}

// IdentityLookup extends [IdentityStore] with lookups by provider account id, used at sign in.
type IdentityLookup interface {
	IdentityStore
	FindByUID(ctx context.Context, provider, uid string) (*models.SocialIdentity, error)
}

// UserStore persists local accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// Refresher exchanges an identity's refresh token for a new access token.
type Refresher interface {
	Refresh(ctx context.Context, identity *models.SocialIdentity) RefreshResult
}

// TrackSearcher runs one track search with the given access token.
type TrackSearcher interface {
	SearchTracks(ctx context.Context, accessToken, query string) (*APIResponse, error)
}
