package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/desertthunder/scplayer/internal/web"
)

// OAuthHandler runs the authorization code flow: /login sends the browser to SoundCloud and
// /callback turns the returned code into a signed-in session.
//
// The state parameter is bound to the browser with a short-lived cookie.
type OAuthHandler struct {
	provider OAuthProvider
	accounts AccountManager
	sessions SessionStore
	cookies  Cookies
	renderer *web.Renderer
	logger   *log.Logger
}

// OAuthOpts contains the dependencies of an [OAuthHandler].
type OAuthOpts struct {
	Provider OAuthProvider
	Accounts AccountManager
	Sessions SessionStore
	Cookies  Cookies
	Renderer *web.Renderer
	Logger   *log.Logger
}

func NewOAuthHandler(opts OAuthOpts) *OAuthHandler {
	return &OAuthHandler{
		provider: opts.Provider,
		accounts: opts.Accounts,
		sessions: opts.Sessions,
		cookies:  opts.Cookies,
		renderer: opts.Renderer,
		logger:   shared.WithLogger(opts.Logger, "handler", "oauth"),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/login", "/callback"}
}

func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/login":
		h.login(w, r)
	case "/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *OAuthHandler) login(w http.ResponseWriter, r *http.Request) {
	state := shared.GenerateID()
	h.cookies.set(w, stateCookie, state, stateTTL)
	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

func (h *OAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	cookie, err := r.Cookie(stateCookie)
	h.cookies.clear(w, stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		h.logger.Warn("oauth state mismatch", "error", shared.ErrInvalidState)
		h.fail(w, http.StatusBadRequest, "Invalid state parameter")
		return
	}

	code := query.Get("code")
	if code == "" {
		h.logger.Warn("authorization failed", "error", query.Get("error"), "description", query.Get("error_description"))
		h.fail(w, http.StatusBadRequest, "Authorization failed")
		return
	}

	token, err := h.provider.Exchange(ctx, code)
	if err != nil {
		h.logger.Error("token exchange failed", "error", err)
		h.fail(w, http.StatusInternalServerError, "Token exchange failed")
		return
	}

	profile, err := h.provider.Me(ctx, token.AccessToken)
	if err != nil {
		h.logger.Error("failed to fetch profile", "error", err)
		h.fail(w, http.StatusInternalServerError, "Could not load your SoundCloud profile")
		return
	}

	user, err := h.accounts.SignIn(ctx, profile, token)
	if err != nil {
		h.logger.Error("sign in failed", "uid", profile.UID(), "error", err)
		h.fail(w, http.StatusInternalServerError, "Sign in failed")
		return
	}

	session := models.NewSession(shared.GenerateID(), user.ID(), h.cookies.SessionLifetime())
	if err := h.sessions.Create(ctx, session); err != nil {
		h.logger.Error("failed to create session", "user", user.ID(), "error", err)
		h.fail(w, http.StatusInternalServerError, "Sign in failed")
		return
	}

	h.cookies.SetSession(w, session.Token())
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *OAuthHandler) fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Error(w, web.ErrorPage{Status: status, Message: message}); err != nil {
		h.logger.Error("failed to render error page", "error", err)
	}
}
