// Package repositories implements SQLite persistence for the scplayer domain entities.
//
// Key Implementations:
//   - [UserRepository] : Local accounts with soft deletes and sequence numbers
//   - [IdentityRepository] : SoundCloud identities looked up by (user, provider) or (provider, uid); extra data is stored as JSON
//   - [SessionRepository] : Login sessions keyed by cookie token, with expiry
//
// Lookups that find nothing return an error wrapping [shared.ErrNotFound], so callers can branch with [errors.Is].
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
