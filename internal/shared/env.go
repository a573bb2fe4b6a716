package shared

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFile is the dotenv file read before environment overrides are parsed.
var EnvFile = ".env"

// envOverrides holds the environment variables that take precedence over the TOML file.
type envOverrides struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI"`
	DatabasePath string `env:"DATABASE_PATH"`
	Port         int    `env:"PORT"`
	LogLevel     string `env:"LOG_LEVEL"`
}

// ApplyEnv loads [EnvFile] (when present) into the process environment and overrides config values with any non-empty variables.
//
// godotenv never replaces variables that are already set, so the real environment wins over the file.
func ApplyEnv(config *Config) error {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, EnvFile, err)
	}

	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}

	if raw.ClientID != "" {
		config.Credentials.SoundCloud.ClientID = raw.ClientID
	}
	if raw.ClientSecret != "" {
		config.Credentials.SoundCloud.ClientSecret = raw.ClientSecret
	}
	if raw.RedirectURI != "" {
		config.Credentials.SoundCloud.RedirectURI = raw.RedirectURI
	}
	if raw.DatabasePath != "" {
		config.Database.Path = raw.DatabasePath
	}
	if raw.Port != 0 {
		config.Server.Port = raw.Port
	}
	if raw.LogLevel != "" {
		config.Log.Level = raw.LogLevel
	}

	return nil
}
