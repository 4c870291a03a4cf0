// Package config loads csrstore settings from a TOML file.
//
// The file is optional. Its values become the defaults of the matching CLI
// flags; a flag set explicitly on the command line always wins.
//
//	[build]
//	sorted = true
//	dedup = true
//	base = "default"      # "0", "1" or "default"
//
//	[cache]
//	backend = "file"      # "file", "redis", "mongo" or "none"
//	dir = "/var/cache/csrstore"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[cache.mongo]
//	uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = "127.0.0.1:8080"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/csrstore/pkg/cache"
	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
	pkgio "github.com/matzehuels/csrstore/pkg/io"
)

const appName = "csrstore"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

var backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Config is the root of the configuration file.
type Config struct {
	Build  Build  `toml:"build"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Build holds the default graph build options.
type Build struct {
	graph.Property
	Base string `toml:"base"`
}

// Cache selects and configures the snapshot cache. Namespace prefixes every
// key, so several users or datasets can share one Redis or MongoDB backend.
type Cache struct {
	Backend   string            `toml:"backend"`
	Dir       string            `toml:"dir"`
	Namespace string            `toml:"namespace"`
	Redis     cache.RedisConfig `toml:"redis"`
	Mongo     cache.MongoConfig `toml:"mongo"`
}

// Server configures the query server.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Build: Build{Base: "default"},
		Cache: Cache{
			Backend: BackendFile,
			Dir:     DefaultCacheDir(),
			Redis:   cache.RedisConfig{Addr: "localhost:6379"},
			Mongo:   cache.MongoConfig{URI: "mongodb://localhost:27017", Database: appName, Collection: "cache"},
		},
		Server: Server{Addr: "127.0.0.1:8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/csrstore/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", appName+".toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/csrstore, falling back to ~/.cache.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// Load reads the configuration at path over the defaults. An empty path
// reads DefaultPath and tolerates its absence; an explicit path must exist.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.NewIOError("open", path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the TOML decoder cannot.
func (c *Config) Validate() error {
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput,
			"cache.backend %q (must be one of: %s)", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if _, err := graph.ParseIndexBase(c.Build.Base); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build.base")
	}
	if c.Build.Undirected && c.Build.Directed {
		return errors.New(errors.ErrCodeInvalidInput, "build.undirected and build.directed are mutually exclusive")
	}
	return nil
}

// Property returns the build options with the index base resolved.
func (c *Config) Property() graph.Property {
	p := c.Build.Property
	p.IndexBase, _ = graph.ParseIndexBase(c.Build.Base)
	return p
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves the configuration to path atomically, creating the parent
// directory.
func (c *Config) Write(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewIOError("create", filepath.Dir(path), err)
	}
	return pkgio.WriteFile(path, data)
}
