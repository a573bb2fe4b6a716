// Package ui implements an interactive terminal interface for searching SoundCloud, using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [QueryView] : Type a query into a text input and submit it
//  2. [ResultsView] : Browse the matching tracks and open one in the browser
//
// Searches run through the same [Searcher] the web app uses, so an expired access token is refreshed
// once before the TUI gives up on a query.
//
// Keyboard navigation follows charmbracelet/bubbles/list (j/k, /, enter) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
