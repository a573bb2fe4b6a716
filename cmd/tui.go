package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/desertthunder/scplayer/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal search for a user's linked SoundCloud account.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, closer, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer closer.Close()

	previous := r.logger
	r.logger = fileLogger
	defer func() { r.logger = previous }()

	e, identity, err := r.linkedIdentity(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	r.logger.Info("starting tui", "user", identity.UserID())
	model := ui.NewModel(ctx, ui.ModelOpts{
		Searcher: e.searcher,
		Identity: identity,
		Open:     shared.OpenBrowser,
		Logger:   r.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
