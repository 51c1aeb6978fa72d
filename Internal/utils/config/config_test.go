package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadConfigFrom_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
logging:
  level: debug
  format: json
journal:
  enabled: true
  recent_limit: 5
`)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	// untouched keys keep their defaults
	if cfg.Server.ReadTimeoutSeconds != 15 {
		t.Errorf("Server.ReadTimeoutSeconds = %d, want 15", cfg.Server.ReadTimeoutSeconds)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env override %q", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	if !cfg.Journal.Enabled || cfg.Journal.RecentLimit != 5 {
		t.Errorf("Journal = %+v, want enabled with limit 5", cfg.Journal)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Password != "s3cret" {
		t.Errorf("Database = %+v, want env host and password", cfg.Database)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoadConfigFrom_AuthNeedsSecret(t *testing.T) {
	path := writeConfig(t, "auth:\n  enabled: true\n")
	t.Setenv("JWT_SECRET_KEY", "")

	if _, err := LoadConfigFrom(path); err == nil || !strings.Contains(err.Error(), "JWT_SECRET_KEY") {
		t.Fatalf("LoadConfigFrom() error = %v, want missing JWT_SECRET_KEY", err)
	}

	t.Setenv("JWT_SECRET_KEY", "test-secret")
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() with secret error = %v", err)
	}
	if !cfg.Auth.Enabled || cfg.Auth.Secret != "test-secret" {
		t.Errorf("Auth = %+v, want enabled with secret", cfg.Auth)
	}
}

func TestLoadConfigFrom_BadBoolEnv(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":8080\"\n")
	t.Setenv("JOURNAL_ENABLED", "sometimes")

	if _, err := LoadConfigFrom(path); err == nil {
		t.Fatal("LoadConfigFrom() error = nil, want invalid boolean error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty address", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: "server.addr"},
		{name: "zero timeout", mutate: func(c *Config) { c.Server.WriteTimeoutSeconds = 0 }, wantErr: "timeouts"},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "zero journal limit", mutate: func(c *Config) { c.Journal.RecentLimit = 0 }, wantErr: "recent_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigureInteractive_ToggleAndSave(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":8080\"\n")
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() error = %v", err)
	}

	// toggle the journal, change the address, then save
	script := strings.Join([]string{"3", "2", "2", ":7070", "", "", "", "", "4"}, "\n") + "\n"
	var out bytes.Buffer
	if err := ConfigureInteractive(cfg, strings.NewReader(script), &out); err != nil {
		t.Fatalf("ConfigureInteractive() error = %v", err)
	}

	saved, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if !saved.Journal.Enabled {
		t.Errorf("saved Journal.Enabled = false, want true")
	}
	if saved.Server.Addr != ":7070" {
		t.Errorf("saved Server.Addr = %q, want %q", saved.Server.Addr, ":7070")
	}
	if !strings.Contains(out.String(), "Configuration saved") {
		t.Errorf("output missing save confirmation:\n%s", out.String())
	}
}
