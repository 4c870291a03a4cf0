package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/csrstore/pkg/config"
)

func TestCacheDir(t *testing.T) {
	cacheHome := testEnv(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)

	dir := c.cacheDir()
	if want := filepath.Join(cacheHome, "csrstore"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	c.cfg = config.Default()
	c.cfg.Cache.Dir = "/var/cache/graphs"
	if dir := c.cacheDir(); dir != "/var/cache/graphs" {
		t.Errorf("cacheDir() = %q, want the configured directory", dir)
	}
}

func TestCacheDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	var logs bytes.Buffer
	dir := New(&logs, LogInfo).cacheDir()

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "csrstore")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCachePathCommand(t *testing.T) {
	cacheHome := testEnv(t)
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(cacheHome, "csrstore"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	cacheHome := testEnv(t)
	input := writeEdges(t)
	output := filepath.Join(t.TempDir(), "g.mtx")

	if _, err := runCLI(t, "convert", input, "-o", output); err != nil {
		t.Fatalf("convert: %v", err)
	}
	dir := filepath.Join(cacheHome, "csrstore")
	if n := countEntries(t, dir); n != 2 {
		t.Fatalf("cache holds %d entries after convert, want snapshot and artifact", n)
	}

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Errorf("cache holds %d entries after clear", n)
	}

	// Clearing an empty cache is not an error.
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestCacheClearOtherBackend(t *testing.T) {
	testEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Cache.Backend = config.BackendRedis
	if err := cfg.Write(path); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--config", path, "cache", "clear"); err != nil {
		t.Errorf("cache clear with redis backend: %v", err)
	}
}
