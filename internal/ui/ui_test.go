package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

// fakeSearcher records submitted queries and returns a canned outcome.
type fakeSearcher struct {
	queries []string
	tracks  []models.Track
	err     string
}

func (f *fakeSearcher) Search(ctx context.Context, identity *models.SocialIdentity, query string) models.Outcome {
	f.queries = append(f.queries, query)
	return models.Outcome{Tracks: f.tracks, Query: query, Error: f.err}
}

// fakeOpener records opened URLs.
type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

func testTracks() []models.Track {
	return []models.Track{
		{
			"id":            float64(1),
			"title":         "Night Drive",
			"permalink_url": "https://soundcloud.com/artist/night-drive",
			"duration":      float64(185000),
			"user":          map[string]any{"username": "artist"},
		},
		{
			"id":    float64(2),
			"title": "No Link",
		},
	}
}

func newTestModel(t *testing.T, searcher *fakeSearcher, opener *fakeOpener) *Model {
	t.Helper()
	identity := models.NewSocialIdentity("user-1", models.ProviderSoundCloud, "42")
	m := NewModel(context.Background(), ModelOpts{
		Searcher: searcher,
		Identity: identity,
		Open:     opener.Open,
		Logger:   shared.NewLogger(&bytes.Buffer{}),
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressKey(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

// submit types query, presses enter and feeds the search result back into the model.
func submit(t *testing.T, m *Model, query string) {
	t.Helper()
	typeText(m, query)
	cmd := pressKey(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected enter to start a search")
	}
	m.Update(cmd())
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel(t *testing.T) {
	t.Run("NewModel", func(t *testing.T) {
		t.Run("starts in query view with focused input", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})
			if m.view != QueryView {
				t.Errorf("expected QueryView, got %v", m.view)
			}
			if !m.input.Focused() {
				t.Error("expected query input to be focused")
			}
			if m.Init() == nil {
				t.Error("expected Init to return the blink command")
			}
		})

		t.Run("defaults opener and logger", func(t *testing.T) {
			m := NewModel(context.Background(), ModelOpts{Searcher: &fakeSearcher{}})
			if m.open == nil || m.logger == nil {
				t.Error("expected opener and logger defaults")
			}
		})
	})

	t.Run("Query View", func(t *testing.T) {
		t.Run("typing fills the input", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})
			typeText(m, "lofi")
			if got := m.input.Value(); got != "lofi" {
				t.Errorf("expected input 'lofi', got %q", got)
			}
		})

		t.Run("enter with empty input does nothing", func(t *testing.T) {
			searcher := &fakeSearcher{}
			m := newTestModel(t, searcher, &fakeOpener{})
			if cmd := pressKey(m, tea.KeyEnter); cmd != nil {
				t.Error("expected no command for empty query")
			}
			if len(searcher.queries) != 0 {
				t.Errorf("expected no searches, got %v", searcher.queries)
			}
		})

		t.Run("enter searches with the raw query", func(t *testing.T) {
			searcher := &fakeSearcher{tracks: testTracks()}
			m := newTestModel(t, searcher, &fakeOpener{})
			submit(t, m, " lofi ")

			if len(searcher.queries) != 1 || searcher.queries[0] != " lofi " {
				t.Fatalf("expected one search for ' lofi ', got %v", searcher.queries)
			}
			if m.view != ResultsView {
				t.Errorf("expected ResultsView, got %v", m.view)
			}
			if got := len(m.results.Items()); got != 2 {
				t.Errorf("expected 2 list items, got %d", got)
			}
			if m.searching {
				t.Error("expected searching flag to be cleared")
			}
		})

		t.Run("second enter while searching is ignored", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})
			typeText(m, "lofi")
			if cmd := pressKey(m, tea.KeyEnter); cmd == nil {
				t.Fatal("expected first enter to start a search")
			}
			if cmd := pressKey(m, tea.KeyEnter); cmd != nil {
				t.Error("expected second enter to be ignored while searching")
			}
		})

		t.Run("esc quits before any search", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})
			if !isQuit(pressKey(m, tea.KeyEsc)) {
				t.Error("expected esc to quit")
			}
		})

		t.Run("esc returns to previous results", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{tracks: testTracks()}, &fakeOpener{})
			submit(t, m, "lofi")
			pressRune(m, 's')
			if m.view != QueryView {
				t.Fatalf("expected QueryView, got %v", m.view)
			}

			if cmd := pressKey(m, tea.KeyEsc); isQuit(cmd) {
				t.Fatal("expected esc not to quit once results exist")
			}
			if m.view != ResultsView {
				t.Errorf("expected ResultsView, got %v", m.view)
			}
		})

		t.Run("q is typed, not quit", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})
			if isQuit(pressRune(m, 'q')) {
				t.Error("expected q to be typed into the input")
			}
			if got := m.input.Value(); got != "q" {
				t.Errorf("expected input 'q', got %q", got)
			}
		})

		t.Run("ctrl+c quits", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})
			if !isQuit(pressKey(m, tea.KeyCtrlC)) {
				t.Error("expected ctrl+c to quit")
			}
		})
	})

	t.Run("Results View", func(t *testing.T) {
		t.Run("enter opens the selected permalink", func(t *testing.T) {
			opener := &fakeOpener{}
			m := newTestModel(t, &fakeSearcher{tracks: testTracks()}, opener)
			submit(t, m, "night")

			cmd := pressKey(m, tea.KeyEnter)
			if cmd == nil {
				t.Fatal("expected enter to open the track")
			}
			m.Update(cmd())

			if len(opener.urls) != 1 || opener.urls[0] != "https://soundcloud.com/artist/night-drive" {
				t.Errorf("expected permalink to be opened, got %v", opener.urls)
			}
			if !strings.Contains(m.View(), "opened https://soundcloud.com/artist/night-drive") {
				t.Errorf("expected status in view, got %s", m.View())
			}
		})

		t.Run("open failure is reported", func(t *testing.T) {
			opener := &fakeOpener{err: errors.New("no browser")}
			m := newTestModel(t, &fakeSearcher{tracks: testTracks()}, opener)
			submit(t, m, "night")

			m.Update(pressKey(m, tea.KeyEnter)())
			if !strings.Contains(m.status, "no browser") {
				t.Errorf("expected failure status, got %q", m.status)
			}
		})

		t.Run("track without permalink is not opened", func(t *testing.T) {
			opener := &fakeOpener{}
			m := newTestModel(t, &fakeSearcher{tracks: testTracks()}, opener)
			submit(t, m, "night")

			pressKey(m, tea.KeyDown)
			track, ok := m.Selected()
			if !ok || track.Title() != "No Link" {
				t.Fatalf("expected second track selected, got %v", track)
			}
			if cmd := pressKey(m, tea.KeyEnter); cmd != nil {
				t.Error("expected no command for a track without permalink")
			}
			if len(opener.urls) != 0 {
				t.Errorf("expected nothing opened, got %v", opener.urls)
			}
			if m.status != "track has no permalink" {
				t.Errorf("unexpected status %q", m.status)
			}
		})

		t.Run("q quits", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{tracks: testTracks()}, &fakeOpener{})
			submit(t, m, "night")
			if !isQuit(pressRune(m, 'q')) {
				t.Error("expected q to quit")
			}
		})

		t.Run("s starts a new search", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{tracks: testTracks()}, &fakeOpener{})
			submit(t, m, "night")

			pressRune(m, 's')
			if m.view != QueryView {
				t.Errorf("expected QueryView, got %v", m.view)
			}
			if !m.input.Focused() {
				t.Error("expected input to be refocused")
			}
		})

		t.Run("keys go to the filter while filtering", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{tracks: testTracks()}, &fakeOpener{})
			submit(t, m, "night")

			pressRune(m, '/')
			if m.results.FilterState() != list.Filtering {
				t.Fatalf("expected filtering state, got %v", m.results.FilterState())
			}
			pressRune(m, 'q')
			if m.view != ResultsView || m.results.FilterState() != list.Filtering {
				t.Error("expected q to be typed into the filter")
			}
		})

		t.Run("search error is shown", func(t *testing.T) {
			searcher := &fakeSearcher{err: "Missing access token"}
			m := newTestModel(t, searcher, &fakeOpener{})
			submit(t, m, "night")

			if m.view != ResultsView {
				t.Fatalf("expected ResultsView, got %v", m.view)
			}
			if !strings.Contains(m.View(), "Missing access token") {
				t.Errorf("expected error in view, got %s", m.View())
			}
		})

		t.Run("empty result is shown", func(t *testing.T) {
			m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})
			submit(t, m, "nothing")
			if !strings.Contains(m.View(), "No tracks found") {
				t.Errorf("expected empty notice, got %s", m.View())
			}
		})
	})
}

func TestTrackItem(t *testing.T) {
	tracks := testTracks()

	t.Run("describes artist and duration", func(t *testing.T) {
		item := trackItem{track: tracks[0]}
		if item.Title() != "Night Drive" || item.FilterValue() != "Night Drive" {
			t.Errorf("unexpected title %q", item.Title())
		}
		if got := item.Description(); got != "artist • 3:05" {
			t.Errorf("unexpected description %q", got)
		}
	})

	t.Run("handles sparse tracks", func(t *testing.T) {
		item := trackItem{track: models.Track{}}
		if item.Title() != "(untitled)" {
			t.Errorf("unexpected title %q", item.Title())
		}
		if item.Description() != "" {
			t.Errorf("unexpected description %q", item.Description())
		}
	})
}
