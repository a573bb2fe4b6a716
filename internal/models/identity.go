package models

import (
	"fmt"
	"maps"
	"time"
)

// ProviderSoundCloud is the provider name stored on SoundCloud identities.
const ProviderSoundCloud = "soundcloud"

// Keys of [SocialIdentity] extra data.
const (
	ExtraAccessToken  = "access_token"
	ExtraRefreshToken = "refresh_token"
	ExtraExpiresAt    = "expires_at"
)

// SocialIdentity links a local [User] to their account at an OAuth provider.
//
// OAuth tokens live in the opaque extra data mapping so providers can attach whatever they return.
// There is at most one identity per (user, provider).
type SocialIdentity struct {
	id        string
	userID    string
	provider  string
	uid       string
	extraData map[string]any
	createdAt time.Time
	updatedAt time.Time
}

// NewSocialIdentity creates an identity for userID at provider, where uid is the provider's account id.
func NewSocialIdentity(userID, provider, uid string) *SocialIdentity {
	now := time.Now().UTC()
	return &SocialIdentity{
		userID:    userID,
		provider:  provider,
		uid:       uid,
		extraData: map[string]any{},
		createdAt: now,
		updatedAt: now,
	}
}

func (s *SocialIdentity) ID() string           { return s.id }
func (s *SocialIdentity) UserID() string       { return s.userID }
func (s *SocialIdentity) Provider() string     { return s.provider }
func (s *SocialIdentity) UID() string          { return s.uid }
func (s *SocialIdentity) CreatedAt() time.Time { return s.createdAt }
func (s *SocialIdentity) UpdatedAt() time.Time { return s.updatedAt }

func (s *SocialIdentity) SetID(id string)                  { s.id = id }
func (s *SocialIdentity) SetUserID(userID string)          { s.userID = userID }
func (s *SocialIdentity) SetCreatedAt(createdAt time.Time) { s.createdAt = createdAt }
func (s *SocialIdentity) SetUpdatedAt(updatedAt time.Time) { s.updatedAt = updatedAt }

// ExtraData returns a copy of the extra data mapping.
func (s *SocialIdentity) ExtraData() map[string]any {
	return maps.Clone(s.extraData)
}

// SetExtraData replaces the extra data mapping with a copy of data.
func (s *SocialIdentity) SetExtraData(data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	s.extraData = maps.Clone(data)
}

// AccessToken returns the stored access token, or "" when there is none.
func (s *SocialIdentity) AccessToken() string {
	return s.stringValue(ExtraAccessToken)
}

// RefreshToken returns the stored refresh token, or "" when there is none.
func (s *SocialIdentity) RefreshToken() string {
	return s.stringValue(ExtraRefreshToken)
}

// ExpiresAt returns the access token expiry when the provider reported one.
func (s *SocialIdentity) ExpiresAt() (time.Time, bool) {
	switch v := s.extraData[ExtraExpiresAt].(type) {
	case int64:
		return time.Unix(v, 0).UTC(), true
	case float64:
		return time.Unix(int64(v), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// ApplyToken stores a freshly issued token.
//
// The access token is always replaced. The refresh token is only replaced when refresh is non-empty,
// since providers are free not to rotate it. A zero expiry clears any previously stored one.
func (s *SocialIdentity) ApplyToken(access, refresh string, expiry time.Time) {
	if s.extraData == nil {
		s.extraData = map[string]any{}
	}

	s.extraData[ExtraAccessToken] = access
	if refresh != "" {
		s.extraData[ExtraRefreshToken] = refresh
	}

	if expiry.IsZero() {
		delete(s.extraData, ExtraExpiresAt)
	} else {
		s.extraData[ExtraExpiresAt] = expiry.Unix()
	}
}

// Validate checks that the identity is attached to a user and a provider account.
func (s *SocialIdentity) Validate() error {
	if s.userID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.provider == "" {
		return fmt.Errorf("provider is required")
	}
	if s.uid == "" {
		return fmt.Errorf("provider uid is required")
	}
	return nil
}

func (s *SocialIdentity) stringValue(key string) string {
	v, _ := s.extraData[key].(string)
	return v
}
