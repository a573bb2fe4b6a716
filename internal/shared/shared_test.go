package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name string
		ms   int
		want string
	}{
		{name: "zero", ms: 0, want: "0:00"},
		{name: "negative", ms: -5, want: "0:00"},
		{name: "under a minute", ms: 42_000, want: "0:42"},
		{name: "minutes", ms: 215_500, want: "3:35"},
		{name: "hours", ms: 3_723_000, want: "1:02:03"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.ms); got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.ms, got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		in   string
		want log.Level
	}{
		{in: "", want: log.InfoLevel},
		{in: "debug", want: log.DebugLevel},
		{in: "WARN", want: log.WarnLevel},
		{in: "nonsense", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	t.Run("writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello")

		out := buf.String()
		if !strings.Contains(out, "hello") || !strings.Contains(out, "component=test") {
			t.Errorf("unexpected log output: %s", out)
		}
	})

	t.Run("file logger creates directories and appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "nested", "tui.log")

		logger, closer, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("first")
		closer.Close()

		logger, closer, err = NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error on reopen, got %v", err)
		}
		logger.Info("second")
		closer.Close()

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected log file to exist: %v", err)
		}
		if !strings.Contains(string(content), "first") || !strings.Contains(string(content), "second") {
			t.Errorf("expected both entries in log file, got %s", content)
		}
	})

	t.Run("file logger fails when parent is a file", func(t *testing.T) {
		parent := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(parent, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, _, err := NewFileLogger(filepath.Join(parent, "tui.log")); err == nil {
			t.Error("expected error when parent path is a regular file")
		}
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %s", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a valid uuid, got %q: %v", id, err)
	}
	if id == GenerateID() {
		t.Error("expected unique ids")
	}
}

func TestMarshalJSON(t *testing.T) {
	pretty, err := MarshalJSON(map[string]int{"a": 1}, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"a\": 1") {
		t.Errorf("expected indented JSON, got %s", pretty)
	}

	if _, err := MarshalJSON(make(chan int), false); err == nil {
		t.Error("expected error marshaling a channel")
	}
}

func TestBrowserCommand(t *testing.T) {
	original := getRuntime
	t.Cleanup(func() { getRuntime = original })

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		cmd, err := browserCommand("http://localhost:3000")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasSuffix(cmd.Path, "xdg-open") && cmd.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open, got %v", cmd.Args)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if _, err := browserCommand("http://localhost:3000"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
