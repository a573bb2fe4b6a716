package models

import (
	"fmt"
	"strings"
	"time"
)

// User is a local account. Users are created the first time someone signs in with SoundCloud.
type User struct {
	id        string
	sequence  int
	username  string
	name      string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewUser creates a [User] with creation timestamps set to now.
func NewUser(sequence int, username, name string) *User {
	now := time.Now().UTC()
	return &User{
		sequence:  sequence,
		username:  username,
		name:      name,
		createdAt: now,
		updatedAt: now,
	}
}

func (u *User) ID() string            { return u.id }
func (u *User) Sequence() int         { return u.sequence }
func (u *User) Username() string      { return u.username }
func (u *User) Name() string          { return u.name }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) DeletedAt() *time.Time { return u.deletedAt }

func (u *User) SetID(id string)                   { u.id = id }
func (u *User) SetSequence(sequence int)          { u.sequence = sequence }
func (u *User) SetUsername(username string)       { u.username = username }
func (u *User) SetName(name string)               { u.name = name }
func (u *User) SetCreatedAt(createdAt time.Time)  { u.createdAt = createdAt }
func (u *User) SetUpdatedAt(updatedAt time.Time)  { u.updatedAt = updatedAt }
func (u *User) SetDeletedAt(deletedAt *time.Time) { u.deletedAt = deletedAt }

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u.name != "" {
		return u.name
	}
	return u.username
}

// Validate checks that the user has a username.
func (u *User) Validate() error {
	if strings.TrimSpace(u.username) == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
