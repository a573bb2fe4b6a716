package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/desertthunder/scplayer/internal/web"
)

// HomeHandler renders the search page, running the search given by the "q" parameter.
//
// Search problems are shown on the page, so the response is always 200 unless rendering fails.
type HomeHandler struct {
	accounts AccountManager
	searcher TrackSearcher
	renderer *web.Renderer
	logger   *log.Logger
}

func NewHomeHandler(accounts AccountManager, searcher TrackSearcher, renderer *web.Renderer, logger *log.Logger) *HomeHandler {
	return &HomeHandler{
		accounts: accounts,
		searcher: searcher,
		renderer: renderer,
		logger:   shared.WithLogger(logger, "handler", "home"),
	}
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := web.HomePage{}

	var identity *models.SocialIdentity
	if user := UserFromContext(ctx); user != nil {
		page.Username = user.Username()

		found, err := h.accounts.Identity(ctx, user.ID())
		if err != nil {
			h.logger.Error("failed to load identity", "user", user.ID(), "error", err)
		}
		identity = found
	}

	page.Outcome = h.searcher.Search(ctx, identity, r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Home(w, page); err != nil {
		h.logger.Error("failed to render home", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
