package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/desertthunder/scplayer/internal/web"
)

// AppOpts contains everything the web app needs.
type AppOpts struct {
	Provider OAuthProvider
	Accounts AccountManager
	Searcher TrackSearcher
	Sessions SessionStore
	Users    UserFinder
	DB       Pinger
	Renderer *web.Renderer
	Cookies  Cookies
	Logger   *log.Logger
}

// NewApp builds the router serving the player:
//
//	GET /          search page
//	GET /login     start SoundCloud sign in
//	GET /callback  finish SoundCloud sign in
//	GET /logout    unlink SoundCloud and sign out
//	GET /healthz   database health
func NewApp(opts AppOpts) *BasicRouter {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(RequestLogger(opts.Logger))

	router.Handle(http.MethodGet, "/healthz", NewHealthHandler(opts.DB))

	router.Use(Sessions(opts.Sessions, opts.Users, opts.Cookies, opts.Logger))

	router.Handle(http.MethodGet, "/{$}", NewHomeHandler(opts.Accounts, opts.Searcher, opts.Renderer, opts.Logger))
	router.Handle(http.MethodGet, "/logout", NewLogoutHandler(opts.Accounts, opts.Sessions, opts.Cookies, opts.Logger))
	router.Handler(NewOAuthHandler(OAuthOpts{
		Provider: opts.Provider,
		Accounts: opts.Accounts,
		Sessions: opts.Sessions,
		Cookies:  opts.Cookies,
		Renderer: opts.Renderer,
		Logger:   opts.Logger,
	}))

	return router
}
