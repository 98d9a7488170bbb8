package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GITHUB_WEBHOOK_SECRET", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Name != "github_webhook_db" || cfg.Database.Table != "repository_data" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Database.ConnectAttempts != 3 || cfg.Database.ConnectDelay != 2*time.Second {
		t.Fatalf("unexpected retry budget: %+v", cfg.Database)
	}
	if cfg.Display.PollInterval != 15*time.Second {
		t.Fatalf("expected 15s poll interval, got %s", cfg.Display.PollInterval)
	}
	if cfg.VerificationEnabled() {
		t.Fatal("expected verification disabled without a secret")
	}
	if !cfg.IsLocalDevelopment() {
		t.Fatal("expected empty environment to count as local")
	}
	if cfg.Log.Level != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", cfg.Log.Level)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("REPOWATCH_PORT", "9090")
	t.Setenv("REPOWATCH_DB_TABLE", "events")
	t.Setenv("REPOWATCH_DB_CONNECT_ATTEMPTS", "5")
	t.Setenv("REPOWATCH_DB_CONNECT_DELAY", "250ms")
	t.Setenv("GITHUB_WEBHOOK_SECRET", "s3cret")
	t.Setenv("REPOWATCH_LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Table != "events" {
		t.Fatalf("expected table events, got %q", cfg.Database.Table)
	}
	if cfg.Database.ConnectAttempts != 5 || cfg.Database.ConnectDelay != 250*time.Millisecond {
		t.Fatalf("unexpected retry budget: %+v", cfg.Database)
	}
	if !cfg.VerificationEnabled() || cfg.Webhook.Secret != "s3cret" {
		t.Fatalf("expected secret to be loaded, got %q", cfg.Webhook.Secret)
	}
	if cfg.Log.Level != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestLoadFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("REPOWATCH_PORT", "9090")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntP("port", "p", 8080, "")
	fs.String("db-uri", "data", "")
	if err := fs.Parse([]string{"--port", "7070", "--db-uri", ":memory:"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("expected flag port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Database.URI != ":memory:" {
		t.Fatalf("expected flag db uri, got %q", cfg.Database.URI)
	}
	if cfg.Addr() != "0.0.0.0:7070" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"REPOWATCH_PORT", "70000"},
		{"REPOWATCH_DB_TABLE", "records; drop table x"},
		{"REPOWATCH_DB_CONNECT_ATTEMPTS", "0"},
		{"REPOWATCH_DB_CONNECT_DELAY", "soon"},
		{"REPOWATCH_POLL_INTERVAL", "0s"},
		{"REPOWATCH_LOG_LEVEL", "loud"},
		{"REPOWATCH_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(nil); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("REPOWATCH_DB_NAME=from_env_file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("REPOWATCH_DB_NAME", "")
	os.Unsetenv("REPOWATCH_DB_NAME")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Database.Name != "from_env_file" {
		t.Fatalf("expected name from env file, got %q", cfg.Database.Name)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}
