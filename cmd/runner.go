package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/repositories"
	"github.com/desertthunder/scplayer/internal/services"
	"github.com/desertthunder/scplayer/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Config and DB are normally resolved per command from the --config flag; tests inject them.
type Runner struct {
	config     *shared.Config
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	DB         *sql.DB
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, identityCommand, searchCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// env is everything a command needs to talk to the database and SoundCloud.
type env struct {
	config     *shared.Config
	db         *sql.DB
	users      *repositories.UserRepository
	identities *repositories.IdentityRepository
	sessions   *repositories.SessionRepository
	soundcloud *services.SoundCloudService
	accounts   *services.Accounts
	searcher   *services.Searcher
	ownsDB     bool
}

// Close releases the database when the env opened it.
func (e *env) Close() error {
	if e.ownsDB {
		return e.db.Close()
	}
	return nil
}

// loadConfig returns the injected config, or resolves the --config file with environment overrides.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	config := r.config
	if config == nil {
		resolved, err := shared.ResolveConfig(cmd.String("config"))
		if err != nil {
			return nil, err
		}
		config = resolved
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Log.Level))
	return config, nil
}

// open builds the command env: config, migrated database, repositories and services.
func (r *Runner) open(cmd *cli.Command) (*env, error) {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, ownsDB := r.db, false
	if db == nil {
		if db, err = shared.OpenDatabase(config.Database); err != nil {
			return nil, err
		}
		ownsDB = true
	}

	e := &env{
		config:     config,
		db:         db,
		users:      repositories.NewUserRepository(db),
		identities: repositories.NewIdentityRepository(db),
		sessions:   repositories.NewSessionRepository(db),
		ownsDB:     ownsDB,
	}

	e.soundcloud = services.NewSoundCloudService(services.SoundCloudOpts{
		Credentials: config.Credentials.SoundCloud,
		Endpoints:   config.SoundCloud,
		HTTPClient:  r.httpClient,
		Store:       e.identities,
		Logger:      r.logger,
	})
	e.accounts = services.NewAccounts(e.users, e.identities, r.logger)
	e.searcher = services.NewSearcher(e.soundcloud, e.soundcloud, r.logger)

	if !config.Credentials.SoundCloud.Configured() {
		r.logger.Warn("soundcloud credentials not configured; sign in and token refresh will fail")
	}
	return e, nil
}

// userFor returns the id given by --user after checking the user exists.
func (r *Runner) userFor(ctx context.Context, cmd *cli.Command, e *env) (string, error) {
	userID := cmd.String("user")
	if userID == "" {
		return "", fmt.Errorf("%w: --user", shared.ErrMissingArgument)
	}
	if _, err := e.users.Get(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", fmt.Errorf("%w: no user %s", shared.ErrInvalidArgument, userID)
		}
		return "", err
	}
	return userID, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
