// Package models defines domain entities and persistence interfaces for the scplayer web service.
//
// The package contains two categories of types:
//
// 1. Persistent Entities: Database-backed models implementing [Model]
//   - [User] : Local accounts created on first SoundCloud login
//   - [SocialIdentity] : The link between a [User] and their SoundCloud account, carrying OAuth tokens in its extra data
//   - [Session] : Browser login sessions keyed by an opaque cookie token
//
// 2. Transient Values: Produced per request and never stored
//   - [Track] : One opaque track object from the SoundCloud search API
//   - [Outcome] : What the home view renders (tracks, echoed query, error)
//
// The Repository[T] interface defines standard CRUD operations for database access.
package models
