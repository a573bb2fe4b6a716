package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title() }
func (i trackItem) Title() string {
	if title := i.track.Title(); title != "" {
		return title
	}
	return "(untitled)"
}
func (i trackItem) Description() string {
	desc := i.track.Artist()
	if ms := i.track.Duration(); ms > 0 {
		if desc == "" {
			return shared.FormatDuration(ms)
		}
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(ms))
	}
	return desc
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = trackItem{track: track}
	}
	return items
}
