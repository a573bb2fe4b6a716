package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/formatter"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	QueryView ViewState = iota
	ResultsView
)

// Searcher runs a track search on behalf of a linked identity.
type Searcher interface {
	Search(ctx context.Context, identity *models.SocialIdentity, query string) models.Outcome
}

// ModelOpts holds the dependencies of a [Model].
type ModelOpts struct {
	Searcher Searcher
	Identity *models.SocialIdentity
	Open     func(url string) error // defaults to [shared.OpenBrowser]
	Logger   *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	searcher  Searcher
	identity  *models.SocialIdentity
	open      func(string) error
	logger    *log.Logger
	width     int
	height    int
	input     textinput.Model
	results   list.Model
	outcome   *models.Outcome
	searching bool
	status    string
	help      help.Model
	keys      keyMap
}

type searchDoneMsg struct {
	query   string
	outcome models.Outcome
}

type openedMsg struct {
	url string
	err error
}

// NewModel creates a new TUI model with the query input focused.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	input := textinput.New()
	input.Placeholder = "search tracks"
	input.Prompt = "› "
	input.Focus()

	results := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	results.Title = "Tracks"
	results.SetShowHelp(false)
	results.DisableQuitKeybindings()

	return &Model{
		ctx:      ctx,
		view:     QueryView,
		searcher: opts.Searcher,
		identity: opts.Identity,
		open:     opts.Open,
		logger:   shared.WithLogger(opts.Logger, "component", "tui"),
		input:    input,
		results:  results,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts the cursor blinking in the query input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.results.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.force) {
			return m, tea.Quit
		}
		switch m.view {
		case QueryView:
			return m.handleQueryKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		}

	case searchDoneMsg:
		m.searching = false
		m.outcome = &msg.outcome
		m.status = ""
		if msg.outcome.Error != "" {
			m.logger.Warn("search failed", "query", msg.query, "error", msg.outcome.Error)
		} else {
			m.logger.Info("search finished", "query", msg.query, "tracks", len(msg.outcome.Tracks))
		}
		m.results.Title = fmt.Sprintf("Tracks for '%s'", msg.query)
		cmd := m.results.SetItems(trackItems(msg.outcome.Tracks))
		m.results.ResetSelected()
		m.view = ResultsView
		m.input.Blur()
		return m, cmd

	case openedMsg:
		if msg.err != nil {
			m.logger.Error("failed to open track", "url", msg.url, "error", msg.err)
			m.status = fmt.Sprintf("failed to open %s: %v", msg.url, msg.err)
		} else {
			m.status = fmt.Sprintf("opened %s", msg.url)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case QueryView:
		return m.renderQuery()
	case ResultsView:
		return m.renderResults()
	default:
		return ""
	}
}

// Selected returns the highlighted track in the results view.
func (m *Model) Selected() (models.Track, bool) {
	item, ok := m.results.SelectedItem().(trackItem)
	if !ok {
		return nil, false
	}
	return item.track, true
}

func (m *Model) handleQueryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		query := m.input.Value()
		if query == "" || m.searching {
			return m, nil
		}
		m.searching = true
		m.status = ""
		return m, m.search(query)
	case key.Matches(msg, m.keys.back):
		if m.outcome == nil {
			return m, tea.Quit
		}
		m.view = ResultsView
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.results.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search), key.Matches(msg, m.keys.back) && m.results.FilterState() == list.Unfiltered:
		m.view = QueryView
		m.status = ""
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.open):
		track, ok := m.Selected()
		if !ok {
			return m, nil
		}
		url := track.PermalinkURL()
		if url == "" {
			m.status = "track has no permalink"
			return m, nil
		}
		return m, m.openTrack(url)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case QueryView:
		m.input, cmd = m.input.Update(msg)
	case ResultsView:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg{query: query, outcome: m.searcher.Search(m.ctx, m.identity, query)}
	}
}

func (m *Model) openTrack(url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: m.open(url)}
	}
}

func (m *Model) renderQuery() string {
	p := formatter.DefaultPalette
	title := p.Title("Search SoundCloud")

	body := m.input.View()
	if m.searching {
		body += "\n\n" + p.Muted("searching...")
	}

	helpKeys := []key.Binding{m.keys.submit}
	if m.outcome != nil {
		helpKeys = append(helpKeys, m.keys.back)
	}
	helpKeys = append(helpKeys, m.keys.force)
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderResults() string {
	p := formatter.DefaultPalette
	var header string
	if m.outcome != nil && m.outcome.Error != "" {
		header = p.Error("Error: "+m.outcome.Error) + "\n\n"
	} else if len(m.results.Items()) == 0 {
		header = p.Warn("No tracks found") + "\n\n"
	}

	footer := m.help.ShortHelpView([]key.Binding{m.keys.open, m.keys.search, m.keys.quit})
	if m.status != "" {
		footer = p.Muted(m.status) + "\n" + footer
	}
	return fmt.Sprintf("%s%s\n\n%s", header, m.results.View(), footer)
}
