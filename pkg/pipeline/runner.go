package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csrstore/pkg/analysis"
	"github.com/matzehuels/csrstore/pkg/cache"
	"github.com/matzehuels/csrstore/pkg/formats"
	"github.com/matzehuels/csrstore/pkg/graph"
	pkgio "github.com/matzehuels/csrstore/pkg/io"
	"github.com/matzehuels/csrstore/pkg/observability"
	"github.com/matzehuels/csrstore/pkg/render/nodelink"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeGraph    = "graph"
	keyTypeArtifact = "artifact"
)

// formatPageRank is the artifact format of cached rankings.
const formatPageRank = "pagerank"

// Runner loads graphs through a cache.
//
// The Runner holds no per-load state, so one Runner may serve many
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load builds the graph at opts.Path, from the cache when a snapshot for the
// same content and options exists.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	parser, err := r.parser(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, parser.Type(), opts.Path)
	res, err := r.load(ctx, parser, opts, logger)

	var v, e int64
	if res != nil {
		v, e = res.Graph.V(), res.Graph.E()
	}
	observability.Pipeline().OnLoadComplete(ctx, parser.Type(), opts.Path, v, e, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	res.LoadTime = time.Since(start)
	logger.Info("loaded graph",
		"path", opts.Path,
		"format", res.Format,
		"vertices", v,
		"edges", e,
		"cached", res.CacheHit,
		"duration", res.LoadTime)
	return res, nil
}

func (r *Runner) load(ctx context.Context, parser formats.Parser, opts Options, logger *log.Logger) (*Result, error) {
	sum, err := cache.HashFile(opts.Path)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Format:      parser.Type(),
		ContentHash: sum,
		Key:         r.Keyer.GraphKey(sum, cache.GraphKeyOpts{Format: parser.Type(), Property: opts.Property}),
	}

	if !opts.Refresh {
		if g, ok := r.cachedGraph(ctx, res.Key, logger); ok {
			res.Graph, res.CacheHit = g, true
			return res, nil
		}
	}

	g, err := formats.LoadWith(opts.Path, parser, opts.Property)
	if err != nil {
		return nil, err
	}
	res.Graph = g

	var buf bytes.Buffer
	if err := pkgio.WriteBinary(g, &buf); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	r.store(ctx, keyTypeGraph, res.Key, buf.Bytes(), cache.TTLGraph, logger)
	return res, nil
}

// cachedGraph decodes a snapshot from the cache. Backend failures and
// undecodable entries count as misses; the latter are also deleted.
func (r *Runner) cachedGraph(ctx context.Context, key string, logger *log.Logger) (*graph.Graph, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
		return nil, false
	}

	g, err := pkgio.ReadBinary(bytes.NewReader(data))
	if err != nil {
		logger.Warn("discarding corrupt cached snapshot", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeGraph)
	logger.Debug("snapshot cache hit", "key", key)
	return g, true
}

// store writes an entry and logs, rather than returns, backend failures.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// parser resolves opts.Format, or detects the parser from the file.
func (r *Runner) parser(opts Options) (formats.Parser, error) {
	if opts.Format != "" {
		return formats.Lookup(opts.Format)
	}
	return formats.Detect(opts.Path)
}

// Export encodes the loaded graph in format. Everything except the binary
// snapshot is cached as an artifact of the graph.
func (r *Runner) Export(ctx context.Context, res *Result, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatBinary {
		return Encode(ctx, res.Graph, format)
	}
	data, _, err := r.artifact(ctx, res, cache.ArtifactKeyOpts{Format: format}, func() ([]byte, error) {
		return Encode(ctx, res.Graph, format)
	})
	return data, err
}

// Rank returns the top k vertices by PageRank (all of them for k < 0),
// cached per graph and k.
func (r *Runner) Rank(ctx context.Context, res *Result, k int) ([]analysis.Score, error) {
	data, hit, err := r.artifact(ctx, res, cache.ArtifactKeyOpts{Format: formatPageRank, Limit: k}, func() ([]byte, error) {
		scores := analysis.PageRank(res.Graph, analysis.DefaultDamping, analysis.DefaultTolerance)
		return json.Marshal(analysis.TopK(scores, k))
	})
	if err != nil {
		return nil, err
	}

	var scores []analysis.Score
	if err := json.Unmarshal(data, &scores); err != nil {
		if !hit {
			return nil, err
		}
		// stale entry from another encoding; recompute
		_ = r.Cache.Delete(ctx, r.Keyer.ArtifactKey(res.Key, cache.ArtifactKeyOpts{Format: formatPageRank, Limit: k}))
		return analysis.TopK(analysis.PageRank(res.Graph, analysis.DefaultDamping, analysis.DefaultTolerance), k), nil
	}
	return scores, nil
}

// artifact returns the cached artifact for res and opts, producing and
// storing it on a miss.
func (r *Runner) artifact(ctx context.Context, res *Result, opts cache.ArtifactKeyOpts, produce func() ([]byte, error)) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(res.Key, opts)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)

	start := time.Now()
	data, err := produce()
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("produced artifact", "format", opts.Format, "bytes", len(data), "duration", time.Since(start))
	r.store(ctx, keyTypeArtifact, key, data, cache.TTLArtifact, r.Logger)
	return data, false, nil
}

// Encode writes g in one of the output formats without caching.
func Encode(ctx context.Context, g *graph.Graph, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatBinary:
		if err := pkgio.WriteBinary(g, &buf); err != nil {
			return nil, err
		}
	case FormatMarket:
		if err := pkgio.WriteMarket(g, &buf); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := pkgio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
	case FormatDOT, FormatSVG:
		dot, err := nodelink.ToDOT(g, nodelink.Options{})
		if err != nil {
			return nil, err
		}
		if format == FormatDOT {
			return []byte(dot), nil
		}
		return nodelink.RenderSVG(ctx, dot)
	default:
		return nil, ValidateFormat(format)
	}
	return buf.Bytes(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
