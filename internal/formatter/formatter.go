// package formatter renders search results for the terminal and exports them as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

// Format names an output format of [Write].
type Format string

const (
	FormatStyled   Format = "styled"
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatStyled, nil
	case FormatStyled, FormatText, FormatCSV, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
	}
}

// Write renders outcome in format to w. pretty indents JSON output.
func Write(w io.Writer, outcome models.Outcome, format Format, pretty bool) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatStyled, "":
		data = []byte(Styled(outcome, DefaultPalette))
	case FormatText:
		data, err = ExportToText(outcome)
	case FormatCSV:
		data, err = ExportToCSV(outcome.Tracks)
	case FormatMarkdown:
		data, err = ExportToMarkdown(outcome)
	case FormatJSON:
		data, err = shared.MarshalJSON(outcome, pretty)
		data = append(data, '\n')
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Styled renders outcome for a terminal using p.
func Styled(outcome models.Outcome, p *Palette) string {
	if p == nil {
		p = DefaultPalette
	}

	var b strings.Builder
	if outcome.Error != "" {
		b.WriteString(p.Error(outcome.Error))
		b.WriteString("\n")
		return b.String()
	}

	if !outcome.Searched() {
		b.WriteString(p.Muted("Nothing searched."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(p.Title(fmt.Sprintf("Results for %q (%d)", outcome.Query, len(outcome.Tracks))))
	b.WriteString("\n")

	if len(outcome.Tracks) == 0 {
		b.WriteString(p.Warn("No tracks found."))
		b.WriteString("\n")
		return b.String()
	}

	for i, track := range outcome.Tracks {
		fmt.Fprintf(&b, "%2d. %s - %s %s\n", i+1, p.OK(track.Artist()), track.Title(), p.Muted("["+shared.FormatDuration(track.Duration())+"]"))
		if url := track.PermalinkURL(); url != "" {
			fmt.Fprintf(&b, "    %s\n", p.Muted(url))
		}
	}
	return b.String()
}

// ExportToCSV converts tracks to CSV with columns: ID, Title, Artist, Duration, URL
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Duration", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID(),
			track.Title(),
			track.Artist(),
			shared.FormatDuration(track.Duration()),
			track.PermalinkURL(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a search outcome to a Markdown list with linked titles
func ExportToMarkdown(outcome models.Outcome) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", outcome.Query)
	if outcome.Error != "" {
		fmt.Fprintf(&buf, "**Error**: %s\n\n", outcome.Error)
	}
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(outcome.Tracks))

	for i, track := range outcome.Tracks {
		title := track.Title()
		if url := track.PermalinkURL(); url != "" {
			title = fmt.Sprintf("[%s](%s)", title, url)
		}
		fmt.Fprintf(&buf, "%d. %s - %s [%s]\n", i+1, track.Artist(), title, shared.FormatDuration(track.Duration()))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a search outcome to plain text
func ExportToText(outcome models.Outcome) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Query: %s\n", outcome.Query)
	if outcome.Error != "" {
		fmt.Fprintf(&buf, "Error: %s\n", outcome.Error)
	}
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(outcome.Tracks))

	for i, track := range outcome.Tracks {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, track.Artist(), track.Title())
	}

	return buf.Bytes(), nil
}
