package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/scplayer/internal/formatter"
	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/urfave/cli/v3"
)

// identitySummary is the printable view of a linked identity. Tokens are masked.
type identitySummary struct {
	UserID       string     `json:"user_id"`
	Provider     string     `json:"provider"`
	UID          string     `json:"uid"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func summarize(identity *models.SocialIdentity) identitySummary {
	summary := identitySummary{
		UserID:       identity.UserID(),
		Provider:     identity.Provider(),
		UID:          identity.UID(),
		AccessToken:  mask(identity.AccessToken()),
		RefreshToken: mask(identity.RefreshToken()),
		UpdatedAt:    identity.UpdatedAt(),
	}
	if expiry, ok := identity.ExpiresAt(); ok {
		summary.ExpiresAt = &expiry
	}
	return summary
}

// mask keeps the last four characters of a token.
func mask(token string) string {
	switch {
	case token == "":
		return "(none)"
	case len(token) <= 4:
		return "****"
	default:
		return "****" + token[len(token)-4:]
	}
}

// linkedIdentity opens the env and loads the identity of --user, failing when none is linked.
func (r *Runner) linkedIdentity(ctx context.Context, cmd *cli.Command) (*env, *models.SocialIdentity, error) {
	e, err := r.open(cmd)
	if err != nil {
		return nil, nil, err
	}

	userID, err := r.userFor(ctx, cmd, e)
	if err != nil {
		e.Close()
		return nil, nil, err
	}

	identity, err := e.accounts.Identity(ctx, userID)
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	if identity == nil {
		e.Close()
		return nil, nil, fmt.Errorf("%w: user %s has no soundcloud identity", shared.ErrNotAuthenticated, userID)
	}
	return e, identity, nil
}

// IdentityShow prints the linked SoundCloud account of a user.
func (r *Runner) IdentityShow(ctx context.Context, cmd *cli.Command) error {
	e, identity, err := r.linkedIdentity(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	summary := summarize(identity)
	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", formatter.DefaultPalette.Title("SoundCloud identity"))
	fmt.Fprintf(&b, "  user:    %s\n", summary.UserID)
	fmt.Fprintf(&b, "  uid:     %s\n", summary.UID)
	fmt.Fprintf(&b, "  access:  %s\n", summary.AccessToken)
	fmt.Fprintf(&b, "  refresh: %s\n", summary.RefreshToken)
	if summary.ExpiresAt != nil {
		fmt.Fprintf(&b, "  expires: %s\n", summary.ExpiresAt.Format(time.RFC3339))
	}
	return r.writePlain("%s", b.String())
}

// IdentityRefresh runs a token refresh for a user and prints the outcome.
func (r *Runner) IdentityRefresh(ctx context.Context, cmd *cli.Command) error {
	e, identity, err := r.linkedIdentity(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	result := e.soundcloud.Refresh(ctx, identity)
	if !result.OK() {
		r.writePlain("%s refresh failed: %s\n", formatter.DefaultPalette.Error("✗"), result.Status)
		return result.Err
	}

	return r.writePlain("%s access token refreshed\n", formatter.DefaultPalette.OK("✓"))
}

// IdentityUnlink removes the SoundCloud identity of a user without touching their sessions.
func (r *Runner) IdentityUnlink(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	userID, err := r.userFor(ctx, cmd, e)
	if err != nil {
		return err
	}

	removed, err := e.accounts.Teardown(ctx, userID)
	if err != nil {
		return err
	}

	if removed {
		return r.writePlain("%s soundcloud identity removed\n", formatter.DefaultPalette.OK("✓"))
	}
	return r.writePlain("%s no soundcloud identity linked\n", formatter.DefaultPalette.Muted("-"))
}
