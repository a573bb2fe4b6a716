package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
	"golang.org/x/oauth2"
)

// Accounts links SoundCloud accounts to local users.
type Accounts struct {
	users      UserStore
	identities IdentityLookup
	logger     *log.Logger
}

// NewAccounts creates a new [Accounts].
func NewAccounts(users UserStore, identities IdentityLookup, logger *log.Logger) *Accounts {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Accounts{
		users:      users,
		identities: identities,
		logger:     shared.WithLogger(logger, "component", "accounts"),
	}
}

// SignIn returns the local user for profile, creating the user and identity on first sign in.
// The identity's tokens are replaced with token either way.
func (a *Accounts) SignIn(ctx context.Context, profile *SoundCloudUser, token *oauth2.Token) (*models.User, error) {
	if profile == nil || token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("%w: profile and access token are required", shared.ErrInvalidInput)
	}

	identity, err := a.identities.FindByUID(ctx, models.ProviderSoundCloud, profile.UID())
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return a.register(ctx, profile, token)
	case err != nil:
		return nil, err
	}

	user, err := a.users.Get(ctx, identity.UserID())
	if err != nil {
		return nil, fmt.Errorf("failed to load user for identity %s: %w", identity.ID(), err)
	}

	if user.Username() != profile.Username || user.Name() != profile.FullName {
		user.SetUsername(profile.Username)
		user.SetName(profile.FullName)
		if err := a.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	identity.ApplyToken(token.AccessToken, token.RefreshToken, token.Expiry)
	if err := a.identities.Save(ctx, identity); err != nil {
		return nil, err
	}

	a.logger.Info("signed in", "user", user.ID(), "username", user.Username())
	return user, nil
}

func (a *Accounts) register(ctx context.Context, profile *SoundCloudUser, token *oauth2.Token) (*models.User, error) {
	user := models.NewUser(0, profile.Username, profile.FullName)
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}

	identity := models.NewSocialIdentity(user.ID(), models.ProviderSoundCloud, profile.UID())
	identity.ApplyToken(token.AccessToken, token.RefreshToken, token.Expiry)
	if err := a.identities.Save(ctx, identity); err != nil {
		return nil, err
	}

	a.logger.Info("registered user", "user", user.ID(), "username", user.Username())
	return user, nil
}

// Identity returns the SoundCloud identity of userID, or nil when the user has none.
func (a *Accounts) Identity(ctx context.Context, userID string) (*models.SocialIdentity, error) {
	identity, err := a.identities.Find(ctx, userID, models.ProviderSoundCloud)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return identity, err
}

// Teardown deletes the SoundCloud identity of userID, if there is one, and reports whether it existed.
func (a *Accounts) Teardown(ctx context.Context, userID string) (bool, error) {
	identity, err := a.Identity(ctx, userID)
	if err != nil {
		return false, err
	}
	if identity == nil {
		return false, nil
	}

	if err := a.identities.Delete(ctx, identity); err != nil {
		return false, fmt.Errorf("failed to delete identity: %w", err)
	}

	a.logger.Info("unlinked soundcloud identity", "user", userID)
	return true, nil
}
