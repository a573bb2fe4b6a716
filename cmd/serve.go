package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/scplayer/internal/server"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/desertthunder/scplayer/internal/web"
	"github.com/urfave/cli/v3"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
	pruneInterval     = time.Hour
)

// Serve starts the web app and blocks until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", e.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", e.config.Server.Addr(), err)
	}

	if cmd.Bool("open") {
		url := "http://" + ln.Addr().String() + "/"
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "error", err)
		}
	}

	return r.serve(ctx, e, ln)
}

// serve runs the app on ln until ctx ends, then shuts down gracefully.
func (r *Runner) serve(ctx context.Context, e *env, ln net.Listener) error {
	renderer, err := web.NewRenderer()
	if err != nil {
		ln.Close()
		return err
	}

	app := server.NewApp(server.AppOpts{
		Provider: e.soundcloud,
		Accounts: e.accounts,
		Searcher: e.searcher,
		Sessions: e.sessions,
		Users:    e.users,
		DB:       e.db,
		Renderer: renderer,
		Cookies: server.Cookies{
			SessionName: e.config.Server.SessionCookie,
			SessionTTL:  e.config.Server.SessionTTL(),
			Secure:      e.config.Server.SecureCookies,
		},
		Logger: r.logger,
	})

	srv := &http.Server{
		Handler:           app,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	pruneCtx, cancelPrune := context.WithCancel(ctx)
	defer cancelPrune()
	go r.pruneSessions(pruneCtx, e, pruneInterval)

	serveErr := make(chan error, 1)
	r.logger.Info("listening", "addr", ln.Addr().String())
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// pruneSessions deletes expired session rows every interval until ctx ends.
func (r *Runner) pruneSessions(ctx context.Context, e *env, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := e.sessions.DeleteExpired(ctx, now)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Warn("failed to prune sessions", "error", err)
				}
				continue
			}
			if removed > 0 {
				r.logger.Debug("pruned expired sessions", "count", removed)
			}
		}
	}
}
