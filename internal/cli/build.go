package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/formats"
	"github.com/matzehuels/csrstore/pkg/graph"
	"github.com/matzehuels/csrstore/pkg/pipeline"
)

// buildFlags are the parse and CSR construction flags shared by every
// command that loads a graph. Values left unset fall back to the [build]
// table of the configuration file.
type buildFlags struct {
	format  string
	base    string
	prop    graph.Property
	noCache bool
	refresh bool
}

// register adds the build flags to cmd.
func (f *buildFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.format, "format", "", "input format: "+strings.Join(formats.Types(), ", ")+" (default: detect)")
	fs.StringVar(&f.base, "base", "default", "vertex id base of text input: 0, 1, default")
	fs.BoolVar(&f.prop.Sorted, "sorted", false, "sort neighbors within each row")
	fs.BoolVar(&f.prop.Dedup, "dedup", false, "remove self-loops and repeated edges")
	fs.BoolVar(&f.prop.BuildInEdges, "in-edges", false, "build the incoming CSR")
	fs.BoolVar(&f.prop.Undirected, "undirected", false, "store every edge in both directions")
	fs.BoolVar(&f.prop.Directed, "directed", false, "never mirror edges, even for symmetric files")
	fs.BoolVar(&f.prop.Randomize, "randomize", false, "permute vertex ids before building")
	fs.Uint64Var(&f.prop.Seed, "seed", 0, "permutation seed for --randomize")
	fs.BoolVar(&f.prop.DirectedByDegree, "by-degree", false, "orient each edge toward the higher-degree endpoint")
	fs.BoolVar(&f.prop.RemoveSingletons, "rm-singletons", false, "drop vertices without edges")
	fs.BoolVar(&f.prop.PrintStats, "print-stats", false, "print degree statistics after loading")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "rebuild even if a cached snapshot exists")
	registerBuildCompletions(cmd)
}

// property layers the explicitly set flags over the configured defaults.
func (f *buildFlags) property(cmd *cobra.Command, base graph.Property) (graph.Property, error) {
	fs := cmd.Flags()
	p := base

	bools := []struct {
		name string
		dst  *bool
		val  bool
	}{
		{"sorted", &p.Sorted, f.prop.Sorted},
		{"dedup", &p.Dedup, f.prop.Dedup},
		{"in-edges", &p.BuildInEdges, f.prop.BuildInEdges},
		{"undirected", &p.Undirected, f.prop.Undirected},
		{"directed", &p.Directed, f.prop.Directed},
		{"randomize", &p.Randomize, f.prop.Randomize},
		{"by-degree", &p.DirectedByDegree, f.prop.DirectedByDegree},
		{"rm-singletons", &p.RemoveSingletons, f.prop.RemoveSingletons},
		{"print-stats", &p.PrintStats, f.prop.PrintStats},
	}
	for _, b := range bools {
		if fs.Changed(b.name) {
			*b.dst = b.val
		}
	}
	if fs.Changed("seed") {
		p.Seed = f.prop.Seed
	}
	if fs.Changed("base") {
		ib, err := graph.ParseIndexBase(f.base)
		if err != nil {
			return p, errors.Wrap(errors.ErrCodeInvalidInput, err, "--base")
		}
		p.IndexBase = ib
	}

	// An explicit direction flag wins over the opposite configured default.
	if fs.Changed("undirected") && !fs.Changed("directed") && p.Undirected {
		p.Directed = false
	}
	if fs.Changed("directed") && !fs.Changed("undirected") && p.Directed {
		p.Undirected = false
	}
	return p, nil
}

// options resolves the load options for path.
func (f *buildFlags) options(cmd *cobra.Command, c *CLI, path string) (pipeline.Options, error) {
	prop, err := f.property(cmd, c.config().Property())
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Path:     path,
		Format:   f.format,
		Property: prop,
		Refresh:  f.refresh,
		Logger:   loggerFromContext(cmd.Context()),
	}
	return opts, opts.Validate()
}

// load builds the graph at path through a new runner. The caller closes the
// runner.
func (c *CLI) load(cmd *cobra.Command, path string, f *buildFlags) (*pipeline.Runner, *pipeline.Result, error) {
	ctx := cmd.Context()
	opts, err := f.options(cmd, c, path)
	if err != nil {
		return nil, nil, err
	}

	runner := c.newRunner(ctx, f.noCache)
	res, err := loadWithSpinner(ctx, runner, opts)
	if err != nil {
		runner.Close()
		return nil, nil, err
	}
	if opts.Property.PrintStats {
		printDegreeStats(newPrinter(cmd.OutOrStdout()), res.Graph)
	}
	return runner, res, nil
}

// loadWithSpinner runs the load behind a spinner.
func loadWithSpinner(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", filepath.Base(opts.Path)))
	spinner.Start()

	res, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return nil, fmt.Errorf("load %s: %w", opts.Path, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return res, nil
}
