package config_test

import (
	"path/filepath"
	"testing"

	"taskdash/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvBackend, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != filepath.Join("/tmp/xdg", "taskdash") {
		t.Errorf("unexpected dir %q", cfg.Dir)
	}
	if cfg.APIURL != config.DefaultAPIURL {
		t.Errorf("expected default API URL, got %q", cfg.APIURL)
	}
	if cfg.Backend != config.BackendREST {
		t.Errorf("expected rest backend, got %q", cfg.Backend)
	}
}

func TestLoad_EnvironmentThenFlags(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "http://env.example/api/")

	cfg, err := config.Load(config.Overrides{ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://env.example/api" {
		t.Errorf("expected env URL without trailing slash, got %q", cfg.APIURL)
	}

	cfg, err = config.Load(config.Overrides{ConfigDir: t.TempDir(), APIURL: "http://flag.example"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://flag.example" {
		t.Errorf("expected flag URL to win, got %q", cfg.APIURL)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	_, err := config.Load(config.Overrides{Backend: "carrier-pigeon"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestConfig_Paths(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}

	if cfg.TokenPath() != filepath.Join(dir, "token.json") {
		t.Errorf("unexpected token path %q", cfg.TokenPath())
	}
	if cfg.HasToken() {
		t.Error("expected no token in empty dir")
	}
	if cfg.Log() == nil {
		t.Error("expected discard logger when none configured")
	}
}
