package server

import (
	"context"

	"github.com/desertthunder/scplayer/internal/models"
)

type userKey struct{}

type sessionKey struct{}

// WithUser stores the signed-in user and their session in ctx.
func WithUser(ctx context.Context, user *models.User, session *models.Session) context.Context {
	ctx = context.WithValue(ctx, userKey{}, user)
	return context.WithValue(ctx, sessionKey{}, session)
}

// UserFromContext returns the signed-in user, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey{}).(*models.User)
	return user
}

// SessionFromContext returns the session of the signed-in user, or nil.
func SessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionKey{}).(*models.Session)
	return session
}
