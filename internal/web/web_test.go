package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/scplayer/internal/models"
	tu "github.com/desertthunder/scplayer/internal/testing"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

func TestRenderer(t *testing.T) {
	t.Run("Home Signed Out", func(t *testing.T) {
		var buf bytes.Buffer
		page := HomePage{Outcome: models.Outcome{Error: "missing access token, please sign in"}}

		if err := newRenderer(t).Home(&buf, page); err != nil {
			t.Fatalf("failed to render: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, `href="/login"`) {
			t.Error("expected sign in link")
		}
		if !strings.Contains(out, "missing access token, please sign in") {
			t.Error("expected error message")
		}
		if strings.Contains(out, `name="q"`) {
			t.Error("expected no search form when signed out")
		}
	})

	t.Run("Home With Tracks", func(t *testing.T) {
		var buf bytes.Buffer
		page := HomePage{
			Username: "listener",
			Outcome: models.Outcome{
				Query: "test",
				Tracks: []models.Track{
					{
						"title":         "First",
						"permalink_url": "https://soundcloud.com/artist/first",
						"duration":      float64(61000),
						"user":          map[string]any{"username": "artist"},
					},
				},
			},
		}

		if err := newRenderer(t).Home(&buf, page); err != nil {
			t.Fatalf("failed to render: %v", err)
		}

		out := buf.String()
		for _, want := range []string{"listener", `href="/logout"`, "First", "artist", "1:01", `value="test"`} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("Home No Results", func(t *testing.T) {
		var buf bytes.Buffer
		page := HomePage{Username: "listener", Outcome: models.Outcome{Query: "nothing"}}

		if err := newRenderer(t).Home(&buf, page); err != nil {
			t.Fatalf("failed to render: %v", err)
		}
		if !strings.Contains(buf.String(), "No tracks found") {
			t.Error("expected empty result message")
		}
	})

	t.Run("Escapes Query", func(t *testing.T) {
		var buf bytes.Buffer
		page := HomePage{Username: "listener", Outcome: models.Outcome{Query: `"><script>alert(1)</script>`}}

		if err := newRenderer(t).Home(&buf, page); err != nil {
			t.Fatalf("failed to render: %v", err)
		}
		if strings.Contains(buf.String(), "<script>alert(1)</script>") {
			t.Error("expected query to be escaped")
		}
	})

	t.Run("Error Page", func(t *testing.T) {
		var buf bytes.Buffer
		if err := newRenderer(t).Error(&buf, ErrorPage{Status: 400, Message: "Invalid state parameter"}); err != nil {
			t.Fatalf("failed to render: %v", err)
		}
		if !strings.Contains(buf.String(), "Invalid state parameter") || !strings.Contains(buf.String(), "400") {
			t.Errorf("unexpected error page %s", buf.String())
		}
	})

	t.Run("Write Failure", func(t *testing.T) {
		if err := newRenderer(t).Home(&tu.FWriter{}, HomePage{}); err == nil {
			t.Error("expected write error")
		}
	})
}
