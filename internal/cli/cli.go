// Package cli implements the csrstore command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/csrstore/pkg/buildinfo"
	"github.com/matzehuels/csrstore/pkg/cache"
	"github.com/matzehuels/csrstore/pkg/config"
	"github.com/matzehuels/csrstore/pkg/observability"
	"github.com/matzehuels/csrstore/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "csrstore"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "csrstore builds compressed sparse row graphs from benchmark files",
		Long:         `csrstore parses graph files in the common benchmark formats (Matrix Market, DIMACS, SNAP, KONECT, Network Repository), builds them into compact CSR containers and converts, inspects or serves the result.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			observability.NewLogHooks(c.Logger).Register()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config returns the loaded configuration, or the defaults before the root
// command has run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), c.keyer(), c.Logger)
}

// keyer returns the default keyer, scoped by the configured namespace.
func (c *CLI) keyer() cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if ns := c.config().Cache.Namespace; ns != "" {
		return cache.NewScopedKeyer(keyer, ns)
	}
	return keyer
}

// newCache opens the configured backend. An unreachable backend degrades to
// no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.Disabled("--no-cache")
	}
	cfg := c.config().Cache

	var (
		ch  cache.Cache
		err error
	)
	switch cfg.Backend {
	case config.BackendNone:
		return cache.Disabled(`backend = "none"`)
	case config.BackendRedis:
		ch, err = cache.NewRedisCache(ctx, cfg.Redis)
	case config.BackendMongo:
		ch, err = cache.NewMongoCache(ctx, cfg.Mongo)
	default:
		ch, err = cache.NewFileCache(c.cacheDir())
	}
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", cfg.Backend, "err", err)
		return cache.Disabled(cfg.Backend + " unreachable")
	}
	return ch
}

// cacheDir returns the configured file cache directory
// (~/.cache/csrstore/ unless overridden).
func (c *CLI) cacheDir() string {
	if dir := c.config().Cache.Dir; dir != "" {
		return dir
	}
	return config.DefaultCacheDir()
}
