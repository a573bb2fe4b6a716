// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Local user ID",
		Required: true,
	}
}

// serveCommand runs the web app
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web app",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the app in a browser once it is listening",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand prepares config and database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// identityCommand manages linked SoundCloud accounts
func identityCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "identity",
		Aliases: []string{"id"},
		Usage:   "Manage a user's SoundCloud identity",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the linked SoundCloud account",
				Flags: []cli.Flag{
					configFlag(),
					userFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.IdentityShow,
			},
			{
				Name:   "refresh",
				Usage:  "Exchange the refresh token for a new access token",
				Flags:  []cli.Flag{configFlag(), userFlag()},
				Action: r.IdentityRefresh,
			},
			{
				Name:   "unlink",
				Usage:  "Remove the linked SoundCloud account",
				Flags:  []cli.Flag{configFlag(), userFlag()},
				Action: r.IdentityUnlink,
			},
		},
	}
}

// searchCommand searches tracks as a user
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search SoundCloud tracks with a user's token",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			configFlag(),
			userFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: styled, text, csv, markdown or json",
				Value:   "styled",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON (same as --format json)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.Search,
	}
}

// tuiCommand launches the interactive search
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Search SoundCloud interactively and open tracks in the browser",
		Flags: []cli.Flag{
			configFlag(),
			userFlag(),
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: "./tmp/scplayer-tui.log",
			},
		},
		Action: r.TUI,
	}
}
