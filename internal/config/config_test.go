package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Polisher.Provider != "huggingface" || cfg.Polisher.Model != "google/flan-t5-small" {
		t.Errorf("unexpected polisher defaults: %+v", cfg.Polisher)
	}
	if cfg.Polisher.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Polisher.Timeout)
	}
	if cfg.Session.IdleTTL != 2*time.Hour || cfg.Session.SweepCron == "" {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}
}

func TestLoadConfig_YAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: from-yaml
polisher:
  model: yaml/model
  timeout: 5s
database:
  sqlite_path: /tmp/yaml.db
session:
  idle_ttl: 30m
`)
	t.Setenv("TELEGRAM_TOKEN", "from-env")
	t.Setenv("HF_TOKEN", "hf-secret")
	t.Setenv("SESSION_IDLE_TTL", "45m")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Errorf("env must override yaml, got %q", cfg.Telegram.Token)
	}
	if cfg.Polisher.Token != "hf-secret" || cfg.Polisher.Model != "yaml/model" {
		t.Errorf("unexpected polisher config: %+v", cfg.Polisher)
	}
	if cfg.Polisher.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.Polisher.Timeout)
	}
	if cfg.Session.IdleTTL != 45*time.Minute {
		t.Errorf("expected 45m, got %v", cfg.Session.IdleTTL)
	}
	if cfg.Database.SQLitePath != "/tmp/yaml.db" {
		t.Errorf("unexpected sqlite path %q", cfg.Database.SQLitePath)
	}
}

func TestLoadConfig_OpenAIProvider(t *testing.T) {
	t.Setenv("POLISH_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HF_TOKEN", "hf-ignored")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Polisher.Token != "sk-test" {
		t.Errorf("expected openai key, got %q", cfg.Polisher.Token)
	}
	if cfg.Polisher.Model != "" {
		t.Errorf("openai model must be left to the backend default, got %q", cfg.Polisher.Model)
	}
}

func TestLoadConfig_BadDuration(t *testing.T) {
	t.Setenv("POLISH_TIMEOUT", "soon")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "telegram: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without telegram token")
	}

	cfg.Telegram.Token = "t"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Supabase.URL = "https://example.supabase.co"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for supabase url without key")
	}
}
