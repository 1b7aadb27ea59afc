package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
app:
  env: dev
http:
  addr: ":9090"
postgres:
  dsn: "postgres://u:p@localhost:5432/bom"
metrics:
  enabled: true
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.Env != "dev" {
		t.Fatalf("App.Env = %q, want dev", c.App.Env)
	}
	if c.HTTP.Addr != ":9090" {
		t.Fatalf("HTTP.Addr = %q, want :9090", c.HTTP.Addr)
	}
	if !c.Metrics.Enabled {
		t.Fatal("Metrics.Enabled = false, want true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing config file")
	}
}
