package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/shared"
)

// LogoutHandler unlinks the signed-in user's SoundCloud identity, ends their session and redirects home.
type LogoutHandler struct {
	accounts AccountManager
	sessions SessionStore
	cookies  Cookies
	logger   *log.Logger
}

func NewLogoutHandler(accounts AccountManager, sessions SessionStore, cookies Cookies, logger *log.Logger) *LogoutHandler {
	return &LogoutHandler{
		accounts: accounts,
		sessions: sessions,
		cookies:  cookies,
		logger:   shared.WithLogger(logger, "handler", "logout"),
	}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if user := UserFromContext(ctx); user != nil {
		if _, err := h.accounts.Teardown(ctx, user.ID()); err != nil {
			h.logger.Error("failed to unlink identity", "user", user.ID(), "error", err)
		}

		if session := SessionFromContext(ctx); session != nil {
			if err := h.sessions.Delete(ctx, session.Token()); err != nil {
				h.logger.Error("failed to delete session", "user", user.ID(), "error", err)
			}
		}

		h.cookies.ClearSession(w)
		h.logger.Info("signed out", "user", user.ID())
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
