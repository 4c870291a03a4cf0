package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// logger and keeping running cache counters.
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
type LogHooks struct {
	logger *log.Logger

	hits   atomic.Int64
	misses atomic.Int64
	bytes  atomic.Int64
}

// NewLogHooks creates hooks that log to logger (log.Default if nil).
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Register installs h for all event kinds.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLoadStart(_ context.Context, format, path string) {
	h.logger.Debug("load start", "format", format, "path", path)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, format, path string, vertices, edges int64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "format", format, "path", path, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load done", "format", format, "vertices", vertices, "edges", edges, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits.Add(1)
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses.Add(1)
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.bytes.Add(int64(size))
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

// CacheStats returns the hits, misses and bytes written seen so far.
func (h *LogHooks) CacheStats() (hits, misses, written int64) {
	return h.hits.Load(), h.misses.Load(), h.bytes.Load()
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
