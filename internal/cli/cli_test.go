package cli

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrstore/pkg/cache"
	"github.com/matzehuels/csrstore/pkg/config"
	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

const snapEdges = "# Directed graph: test\n# Nodes: 4 Edges: 4\n0\t1\n1\t2\n2\t3\n0\t2\n"

// testEnv isolates the config and cache directories of one test.
func testEnv(t *testing.T) (cacheHome string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cacheHome
}

// writeEdges writes a small SNAP edge list and returns its path.
func writeEdges(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte(snapEdges), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command with args and returns what the command
// wrote to its output stream.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && strings.HasSuffix(path, ".entry") {
			n++
		}
		return nil
	})
	return n
}

func TestConvertCommand(t *testing.T) {
	testEnv(t)
	input := writeEdges(t)
	output := filepath.Join(t.TempDir(), "edges.mtx")

	if _, err := runCLI(t, "convert", input, "-o", output, "--sorted"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "%%MatrixMarket matrix coordinate pattern general\n4 4 4\n1 2\n1 3\n2 3\n3 4\n"
	if string(data) != want {
		t.Errorf("market output = %q, want %q", data, want)
	}
}

func TestConvertDefaultOutput(t *testing.T) {
	testEnv(t)
	input := writeEdges(t)

	if _, err := runCLI(t, "convert", input); err != nil {
		t.Fatalf("convert: %v", err)
	}
	snapshot := strings.TrimSuffix(input, ".txt") + ".csr"
	if _, err := os.Stat(snapshot); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}

	// The snapshot is itself a loadable input.
	if _, err := runCLI(t, "stats", snapshot, "--top", "2"); err != nil {
		t.Errorf("stats on snapshot: %v", err)
	}
}

func TestConvertErrors(t *testing.T) {
	testEnv(t)
	input := writeEdges(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown input format", []string{"convert", input, "--format", "nope"}, errors.ErrCodeUnsupported},
		{"unknown output format", []string{"convert", input, "--to", "png"}, errors.ErrCodeInvalidFormat},
		{"unknown extension", []string{"convert", input, "-o", "out.xyz"}, errors.ErrCodeInvalidFormat},
		{"both directions", []string{"convert", input, "--directed", "--undirected"}, errors.ErrCodeInvalidInput},
		{"bad base", []string{"convert", input, "--base", "2"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error %v has code %q, want %q", err, errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestConvertMissingInput(t *testing.T) {
	testEnv(t)
	_, err := runCLI(t, "convert", filepath.Join(t.TempDir(), "missing.txt"), "-o", "out.json")
	var ioErr *errors.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want IOError", err)
	}
}

func TestConvertTarget(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		output, to string
		wantFormat string
		wantPath   string
		wantErr    bool
	}{
		{"default", "data/g.txt", "", "", "csr", "data/g.csr", false},
		{"from extension", "g.txt", "out.json", "", "json", "out.json", false},
		{"explicit format wins", "g.txt", "out.bin", "mtx", "mtx", "out.bin", false},
		{"explicit format names output", "g.txt", "", "svg", "svg", "g.svg", false},
		{"would overwrite input", "g.csr", "", "", "", "", true},
		{"unknown extension", "g.txt", "out.png", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, path, err := convertTarget(tt.input, tt.output, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("convertTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if format != tt.wantFormat || path != tt.wantPath {
				t.Errorf("convertTarget() = (%q, %q), want (%q, %q)", format, path, tt.wantFormat, tt.wantPath)
			}
		})
	}
}

func TestBuildFlagsProperty(t *testing.T) {
	base := graph.Property{Sorted: true, Undirected: true, Dedup: true, Seed: 7}

	tests := []struct {
		name string
		args []string
		want graph.Property
	}{
		{"no flags keep config", nil, base},
		{"explicit false overrides", []string{"--sorted=false"}, graph.Property{Undirected: true, Dedup: true, Seed: 7}},
		{"directed replaces undirected", []string{"--directed"}, graph.Property{Sorted: true, Directed: true, Dedup: true, Seed: 7}},
		{"seed and base", []string{"--seed", "42", "--base", "1"}, graph.Property{Sorted: true, Undirected: true, Dedup: true, Seed: 42, IndexBase: graph.BaseOne}},
		{"in-edges", []string{"--in-edges", "--rm-singletons"}, graph.Property{Sorted: true, Undirected: true, Dedup: true, Seed: 7, BuildInEdges: true, RemoveSingletons: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f buildFlags
			cmd := &cobra.Command{}
			f.register(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			got, err := f.property(cmd, base)
			if err != nil {
				t.Fatalf("property() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("property() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	testEnv(t)
	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[build]", `backend = "file"`, `addr = "127.0.0.1:8080"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInit(t *testing.T) {
	testEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := runCLI(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if _, err := runCLI(t, "--config", path, "config", "init"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second init error = %v, want invalid input", err)
	}
	if _, err := runCLI(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := runCLI(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestConfigFileApplies(t *testing.T) {
	testEnv(t)
	input := writeEdges(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Build.Undirected = true
	cfg.Cache.Backend = config.BackendNone
	if err := cfg.Write(path); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(t.TempDir(), "g.json")
	if _, err := runCLI(t, "--config", path, "convert", input, "-o", output); err != nil {
		t.Fatalf("convert: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"directed": false`) {
		t.Errorf("configured undirected build not applied:\n%s", data)
	}
}

func TestBadConfigFails(t *testing.T) {
	testEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"tape\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--config", path, "config", "show"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want invalid input", err)
	}
}

func TestNewCache(t *testing.T) {
	cacheHome := testEnv(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	ctx := context.Background()

	if nc, ok := c.newCache(ctx, true).(*cache.NullCache); !ok || nc.Reason != "--no-cache" {
		t.Errorf("--no-cache should disable caching, got %v", nc)
	}

	c.cfg = config.Default()
	fc, ok := c.newCache(ctx, false).(*cache.FileCache)
	if !ok {
		t.Fatal("file backend should open a FileCache")
	}
	if want := filepath.Join(cacheHome, appName); fc.Dir() != want {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), want)
	}

	c.cfg.Cache.Backend = config.BackendNone
	if nc, ok := c.newCache(ctx, false).(*cache.NullCache); !ok || nc.Reason != `backend = "none"` {
		t.Errorf("none backend should disable caching, got %v", nc)
	}
}

func TestKeyerNamespace(t *testing.T) {
	testEnv(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	opts := cache.GraphKeyOpts{Format: "snap"}

	plain := c.keyer().GraphKey("abc", opts)

	c.cfg = config.Default()
	c.cfg.Cache.Namespace = "bench:road:"
	scoped := c.keyer().GraphKey("abc", opts)
	if scoped != "bench:road:"+plain {
		t.Errorf("scoped key = %q, want prefix on %q", scoped, plain)
	}
}
