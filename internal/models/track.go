package models

import "strconv"

// Track is one track object as returned by the SoundCloud API.
//
// The payload is kept opaque; the accessors only read the few fields the views display.
type Track map[string]any

// ID returns the SoundCloud track id.
func (t Track) ID() string {
	switch v := t["id"].(type) {
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return ""
	}
}

// Title returns the track title.
func (t Track) Title() string {
	return t.str("title")
}

// Artist returns the uploader's username.
func (t Track) Artist() string {
	user, _ := t["user"].(map[string]any)
	name, _ := user["username"].(string)
	return name
}

// PermalinkURL returns the public SoundCloud page of the track.
func (t Track) PermalinkURL() string {
	return t.str("permalink_url")
}

// ArtworkURL returns the artwork image, if any.
func (t Track) ArtworkURL() string {
	return t.str("artwork_url")
}

// Duration returns the track length in milliseconds.
func (t Track) Duration() int {
	switch v := t["duration"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (t Track) str(key string) string {
	v, _ := t[key].(string)
	return v
}

// Outcome is what a home request renders.
//
// Query is empty when no search was performed (or the user is not signed in), and Error is empty
// when nothing went wrong. Tracks may be empty in both cases.
type Outcome struct {
	Tracks []Track `json:"tracks"`
	Query  string  `json:"query,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Searched reports whether a search was attempted for this outcome.
func (o Outcome) Searched() bool {
	return o.Query != ""
}
