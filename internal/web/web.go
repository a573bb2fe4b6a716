// Package web renders the HTML pages of the player.
//
// Templates are embedded into the binary and parsed once by [NewRenderer].
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

//go:embed templates/*.html
var templateFiles embed.FS

// HomePage is the data rendered by the home template.
type HomePage struct {
	Username string
	Outcome  models.Outcome
}

// SignedIn reports whether the page is rendered for a signed-in user.
func (p HomePage) SignedIn() bool {
	return p.Username != ""
}

// ErrorPage is the data rendered by the error template.
type ErrorPage struct {
	Status  int
	Message string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"duration": shared.FormatDuration,
	}

	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Home renders the search page.
func (r *Renderer) Home(w io.Writer, page HomePage) error {
	return r.render(w, "home.html", page)
}

// Error renders a short error page.
func (r *Renderer) Error(w io.Writer, page ErrorPage) error {
	return r.render(w, "error.html", page)
}

// render executes name into a buffer first so a failing template never leaves a half-written page.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
