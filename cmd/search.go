package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/scplayer/internal/formatter"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a track search with the stored token of --user and prints the result.
//
// Domain failures (expired token, API errors) are printed as part of the outcome and also returned as an error.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}

	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	userID, err := r.userFor(ctx, cmd, e)
	if err != nil {
		return err
	}

	identity, err := e.accounts.Identity(ctx, userID)
	if err != nil {
		return err
	}

	outcome := e.searcher.Search(ctx, identity, query)
	if err := formatter.Write(r.output, outcome, format, cmd.Bool("pretty")); err != nil {
		return err
	}

	if outcome.Error != "" {
		return errors.New(outcome.Error)
	}
	return nil
}
