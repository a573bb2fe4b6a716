package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./scplayer.db" {
			t.Errorf("expected database path ./scplayer.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.SoundCloud.APIURL != "https://api.soundcloud.com" {
			t.Errorf("expected soundcloud api url, got %s", config.SoundCloud.APIURL)
		}

		if config.SoundCloud.TokenURL != "https://api.soundcloud.com/oauth2/token" {
			t.Errorf("expected soundcloud token url, got %s", config.SoundCloud.TokenURL)
		}

		if config.Credentials.SoundCloud.Configured() {
			t.Error("expected default credentials to be empty")
		}
	})

	t.Run("Timeouts And TTL", func(t *testing.T) {
		config := DefaultConfig()
		if got := config.SoundCloud.Timeout(); got != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", got)
		}

		config.SoundCloud.TimeoutSeconds = 0
		if got := config.SoundCloud.Timeout(); got != 10*time.Second {
			t.Errorf("expected fallback timeout of 10s, got %v", got)
		}

		config.Server.SessionTTLHours = 2
		if got := config.Server.SessionTTL(); got != 2*time.Hour {
			t.Errorf("expected 2h session ttl, got %v", got)
		}

		if got := config.Server.Addr(); got != "localhost:3000" {
			t.Errorf("expected localhost:3000, got %s", got)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.soundcloud]
client_id = "file_id"
client_secret = "file_secret"

[server]
port = 8080
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.SoundCloud.ClientID != "file_id" {
			t.Errorf("expected client_id file_id, got %s", config.Credentials.SoundCloud.ClientID)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected port 8080, got %d", config.Server.Port)
		}
		if config.SoundCloud.APIURL != "https://api.soundcloud.com" {
			t.Errorf("expected unset values to keep defaults, got %s", config.SoundCloud.APIURL)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	useEnvFile := func(t *testing.T, content string) {
		t.Helper()
		path := filepath.Join(t.TempDir(), ".env")
		if content != "" {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatalf("failed to write env file: %v", err)
			}
		}
		previous := EnvFile
		EnvFile = path
		t.Cleanup(func() { EnvFile = previous })
	}

	t.Run("Environment Overrides Credentials", func(t *testing.T) {
		useEnvFile(t, "")
		t.Setenv("CLIENT_ID", "env_id")
		t.Setenv("CLIENT_SECRET", "env_secret")
		t.Setenv("PORT", "9090")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.SoundCloud.ClientID != "env_id" {
			t.Errorf("expected env_id, got %s", config.Credentials.SoundCloud.ClientID)
		}
		if config.Credentials.SoundCloud.ClientSecret != "env_secret" {
			t.Errorf("expected env_secret, got %s", config.Credentials.SoundCloud.ClientSecret)
		}
		if config.Server.Port != 9090 {
			t.Errorf("expected port 9090, got %d", config.Server.Port)
		}
	})

	t.Run("Empty Variables Keep File Values", func(t *testing.T) {
		useEnvFile(t, "")
		t.Setenv("CLIENT_ID", "")
		t.Setenv("CLIENT_SECRET", "")

		config := DefaultConfig()
		config.Credentials.SoundCloud.ClientID = "file_id"
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.SoundCloud.ClientID != "file_id" {
			t.Errorf("expected file_id to survive, got %s", config.Credentials.SoundCloud.ClientID)
		}
	})

	t.Run("Invalid Port", func(t *testing.T) {
		useEnvFile(t, "")
		t.Setenv("PORT", "not-a-number")

		if err := ApplyEnv(DefaultConfig()); err == nil {
			t.Error("expected error for invalid PORT")
		}
	})

	t.Run("ResolveConfig Without File", func(t *testing.T) {
		useEnvFile(t, "")
		t.Setenv("DATABASE_PATH", ":memory:")

		config, err := ResolveConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Database.Path != ":memory:" {
			t.Errorf("expected :memory:, got %s", config.Database.Path)
		}
	})
}
