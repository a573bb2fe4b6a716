package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
	"golang.org/x/oauth2"
)

// RefreshStatus tags the outcome of a token refresh.
type RefreshStatus int

const (
	RefreshSuccess RefreshStatus = iota
	RefreshConfigMissing
	RefreshTokenMissing
	RefreshNetworkError
	RefreshUpstreamError
	RefreshMalformedResponse
	RefreshStoreError
)

func (s RefreshStatus) String() string {
	switch s {
	case RefreshSuccess:
		return "success"
	case RefreshConfigMissing:
		return "config missing"
	case RefreshTokenMissing:
		return "refresh token missing"
	case RefreshNetworkError:
		return "network error"
	case RefreshUpstreamError:
		return "upstream error"
	case RefreshMalformedResponse:
		return "malformed response"
	case RefreshStoreError:
		return "store error"
	default:
		return fmt.Sprintf("unknown (%d)", int(s))
	}
}

// RefreshResult is the outcome of [SoundCloudService.Refresh]. Err is set for every status but [RefreshSuccess].
type RefreshResult struct {
	Status RefreshStatus
	Err    error
}

// OK reports whether the refresh succeeded and the new token was stored.
func (r RefreshResult) OK() bool {
	return r.Status == RefreshSuccess
}

// Refresh exchanges the identity's refresh token for a new access token and persists the result.
//
// The access token is always replaced; the refresh token only when the provider issues a new one.
// On any failure the identity is left as it was and the cause is logged.
func (s *SoundCloudService) Refresh(ctx context.Context, identity *models.SocialIdentity) RefreshResult {
	if identity == nil || identity.RefreshToken() == "" {
		s.logger.Warn("no refresh token available")
		return RefreshResult{Status: RefreshTokenMissing, Err: shared.ErrNoRefreshToken}
	}

	logger := s.logger.With("identity", identity.ID(), "user", identity.UserID())

	if !s.credentials.Configured() {
		logger.Warn("soundcloud client_id or client_secret not configured, cannot refresh")
		return RefreshResult{Status: RefreshConfigMissing, Err: shared.ErrMissingCredentials}
	}

	source := s.config.TokenSource(s.oauthContext(ctx), &oauth2.Token{RefreshToken: identity.RefreshToken()})
	token, err := source.Token()
	if err != nil {
		status := classifyRefreshError(err)
		logger.Error("token refresh failed", "status", status, "error", err)
		return RefreshResult{Status: status, Err: fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)}
	}
	if token.AccessToken == "" {
		logger.Error("token refresh returned no access token")
		return RefreshResult{Status: RefreshMalformedResponse, Err: fmt.Errorf("%w: missing access_token", shared.ErrRefreshFailed)}
	}

	previous := identity.ExtraData()
	identity.ApplyToken(token.AccessToken, token.RefreshToken, token.Expiry)

	if err := s.store.Save(ctx, identity); err != nil {
		identity.SetExtraData(previous)
		logger.Error("failed to store refreshed token", "error", err)
		return RefreshResult{Status: RefreshStoreError, Err: err}
	}

	logger.Info("access token refreshed")
	return RefreshResult{Status: RefreshSuccess}
}

// classifyRefreshError maps an oauth2 token error onto a [RefreshStatus].
func classifyRefreshError(err error) RefreshStatus {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return RefreshUpstreamError
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return RefreshNetworkError
	}

	return RefreshMalformedResponse
}
