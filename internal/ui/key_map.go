package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	submit key.Binding
	open   key.Binding
	search key.Binding
	back   key.Binding
	quit   key.Binding
	force  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open in browser")),
		search: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "new search")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		force:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.open},
		{k.submit, k.search, k.back},
		{k.quit, k.force},
	}
}
