// Package cli implements the csrstore command-line interface.
//
// The commands load a graph file through the snapshot cache and then act on
// the built container:
//   - convert: Write the graph as a binary snapshot, Matrix Market, JSON, DOT or SVG
//   - stats: Print counts, degree statistics, components and PageRank leaders
//   - serve: Expose the graph over a read-only HTTP API
//   - browse: Walk vertices and their neighbors in an interactive terminal view
//   - cache, config: Manage the snapshot cache and the configuration file
//
// # Build Options
//
// Defaults come from the [build] table of the configuration file. Flags such
// as --sorted or --undirected override a value only when given explicitly.
//
// # Logging
//
// Log records go to stderr; command results go to stdout. --verbose (-v)
// enables debug records, including one per cache hit, miss and write. The
// root command stores the logger in the command context, where the pipeline
// picks it up.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints wall-clock time to the hundredth of a second.
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return log.WithContext(ctx, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}

// step times one stage of a command and logs it when finished.
type step struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func startStep(ctx context.Context, name string) *step {
	return &step{logger: loggerFromContext(ctx), name: name, start: time.Now()}
}

// done logs the stage with its elapsed time and any extra key/value pairs.
func (s *step) done(keyvals ...any) {
	keyvals = append([]any{"took", s.elapsed()}, keyvals...)
	s.logger.Info(s.name, keyvals...)
}

func (s *step) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}
