package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checker.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"port": 9000, "log_level": "debug"},
		"database": {
			"postgres": {"dsn": "postgres://localhost/checker"},
			"redis": {"url": "redis://localhost:6379"}
		},
		"comparison": {"results_dir": "out", "block_size": 3}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Postgres.DSN != "postgres://localhost/checker" {
		t.Errorf("dsn = %q", cfg.Database.Postgres.DSN)
	}
	if cfg.Comparison.BlockSize != 3 {
		t.Errorf("block size = %d, want 3", cfg.Comparison.BlockSize)
	}
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("CHECKER_TEST_DSN", "postgres://env/checker")
	path := writeConfig(t, `{
		"database": {"postgres": {"dsn": "${CHECKER_TEST_DSN}"}}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Postgres.DSN != "postgres://env/checker" {
		t.Errorf("dsn = %q, want env value", cfg.Database.Postgres.DSN)
	}
}

func TestLoadEnvDefault(t *testing.T) {
	path := writeConfig(t, `{
		"database": {"redis": {"url": "${CHECKER_UNSET_URL:redis://fallback:6379}"}}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Redis.URL != "redis://fallback:6379" {
		t.Errorf("url = %q, want fallback", cfg.Database.Redis.URL)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Comparison.BlockSize != 2 {
		t.Errorf("default block size = %d, want 2", cfg.Comparison.BlockSize)
	}
	if cfg.Comparison.ResultsDir != "results" {
		t.Errorf("default results dir = %q", cfg.Comparison.ResultsDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.json"); err == nil {
		t.Error("expected error for missing config file")
	}
}
