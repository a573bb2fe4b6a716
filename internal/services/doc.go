// Package services talks to SoundCloud on behalf of signed-in users.
//
// # SoundCloud
//
// [SoundCloudService] wraps the OAuth2 flow (authorization URL, code exchange, refresh) and the
// REST endpoints the app needs (/me, /tracks). Tokens are kept in the extra data of a
// [models.SocialIdentity] and persisted through an [IdentityStore].
//
// # Token Refresh
//
// [SoundCloudService.Refresh] never returns a Go error. It reports a [RefreshResult] whose
// [RefreshStatus] tells callers why a refresh failed:
//   - [RefreshConfigMissing] : client_id or client_secret not configured
//   - [RefreshTokenMissing] : the identity has no refresh token
//   - [RefreshNetworkError] : the token endpoint could not be reached
//   - [RefreshUpstreamError] : the token endpoint answered with a non-2xx status
//   - [RefreshMalformedResponse] : the response carried no usable access token
//   - [RefreshStoreError] : the new token could not be saved
//
// Nothing reaches the network unless credentials and a refresh token are present.
// A failed save restores the identity's previous tokens.
//
// # Search
//
// [Searcher.Search] runs a track search and turns every failure into a user-facing message on
// [models.Outcome]. A 401 triggers one refresh and at most one retry.
//
// # Accounts
//
// [Accounts] links SoundCloud profiles to local users at sign in and removes the link at sign out.
package services
