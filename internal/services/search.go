package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

// Messages shown to the user when a search cannot complete.
const (
	MsgMissingAccessToken = "missing access token, please sign in"
	MsgRefreshFailed      = "token expired and refresh failed, please sign in again."
	MsgRejectedAfterRetry = "access token rejected after refresh, please sign in again."
)

// Searcher runs track searches for a signed-in identity, refreshing its access token once when it is rejected.
type Searcher struct {
	client    TrackSearcher
	refresher Refresher
	logger    *log.Logger
}

// NewSearcher creates a new [Searcher].
func NewSearcher(client TrackSearcher, refresher Refresher, logger *log.Logger) *Searcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Searcher{
		client:    client,
		refresher: refresher,
		logger:    shared.WithLogger(logger, "component", "search"),
	}
}

// Search looks up query for identity and reports the result as an [models.Outcome].
//
// Every failure ends up in Outcome.Error. The query is sent and echoed exactly as submitted, and only
// for authenticated callers; only an empty query skips the search.
func (s *Searcher) Search(ctx context.Context, identity *models.SocialIdentity, query string) models.Outcome {
	if identity == nil || identity.AccessToken() == "" {
		return models.Outcome{Error: MsgMissingAccessToken}
	}

	if query == "" {
		return models.Outcome{}
	}

	outcome := models.Outcome{Query: query}

	resp, err := s.client.SearchTracks(ctx, identity.AccessToken(), query)
	if err != nil {
		return s.requestFailed(outcome, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		s.logger.Info("access token rejected, refreshing", "user", identity.UserID())

		result := s.refresher.Refresh(ctx, identity)
		if !result.OK() || identity.AccessToken() == "" {
			s.logger.Warn("refresh after 401 failed", "status", result.Status, "error", result.Err)
			outcome.Error = MsgRefreshFailed
			return outcome
		}

		resp, err = s.client.SearchTracks(ctx, identity.AccessToken(), query)
		if err != nil {
			return s.requestFailed(outcome, err)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			s.logger.Warn("refreshed access token rejected", "user", identity.UserID())
			outcome.Error = MsgRejectedAfterRetry
			return outcome
		}
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("search failed", "status", resp.StatusCode)
		outcome.Error = fmt.Sprintf("SoundCloud API error: %d - %s", resp.StatusCode, string(resp.Body))
		return outcome
	}

	tracks, err := decodeTracks(resp.Body)
	if err != nil {
		s.logger.Error("failed to decode search results", "error", err)
		outcome.Error = fmt.Sprintf("JSON decode error: %v", err)
		return outcome
	}

	outcome.Tracks = tracks
	return outcome
}

func (s *Searcher) requestFailed(outcome models.Outcome, err error) models.Outcome {
	s.logger.Error("search request failed", "error", err)
	outcome.Error = fmt.Sprintf("SoundCloud request failed: %v", err)
	return outcome
}

// decodeTracks accepts a bare JSON array or a paginated {"collection": [...]} object.
// Elements that are not JSON objects are skipped.
func decodeTracks(body []byte) ([]models.Track, error) {
	var raw []json.RawMessage
	arrayErr := json.Unmarshal(body, &raw)
	if arrayErr != nil {
		var page struct {
			Collection *[]json.RawMessage `json:"collection"`
		}
		if err := json.Unmarshal(body, &page); err != nil || page.Collection == nil {
			return nil, arrayErr
		}
		raw = *page.Collection
	}

	tracks := make([]models.Track, 0, len(raw))
	for _, element := range raw {
		var track models.Track
		if err := json.Unmarshal(element, &track); err != nil || track == nil {
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
