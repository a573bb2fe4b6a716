package server

import (
	"context"
	"net/http"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/services"
	"golang.org/x/oauth2"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows which paths it serves.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router registers handlers behind a shared middleware stack.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// SessionStore persists login sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// UserFinder loads the user a session belongs to.
type UserFinder interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// AccountManager links provider accounts to local users. Implemented by [services.Accounts].
type AccountManager interface {
	SignIn(ctx context.Context, profile *services.SoundCloudUser, token *oauth2.Token) (*models.User, error)
	Identity(ctx context.Context, userID string) (*models.SocialIdentity, error)
	Teardown(ctx context.Context, userID string) (bool, error)
}

// TrackSearcher runs searches for the home page. Implemented by [services.Searcher].
type TrackSearcher interface {
	Search(ctx context.Context, identity *models.SocialIdentity, query string) models.Outcome
}

// OAuthProvider is the OAuth side of [services.SoundCloudService].
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Me(ctx context.Context, accessToken string) (*services.SoundCloudUser, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}
