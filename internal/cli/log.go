// Package cli implements the unprecompose command-line interface.
//
// The CLI is the host around the flattening transformer: it loads a project
// document, resolves the active composition and selection, runs the
// transformer, reports skipped layers and writes the result back. A snapshot
// of the document is kept before every write so the change can be undone.
//
// # Commands
//
//   - flatten: Flatten selected precompositions of a project
//   - undo: Restore a project from the snapshot taken before the last flatten
//   - tree: Render the composition nesting as DOT or SVG
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so library calls can trace their progress.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, stamping each line as
// "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one step of a command and logs its duration at debug
// level when the step completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts a measurement.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond.
// Example output: "flattened 2 precompositions (4ms)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Debug(fmt.Sprintf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond)), keyvals...)
}

type loggerKey struct{}

// withLogger attaches l to ctx for the commands and the library calls below
// them.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command's
// PersistentPreRunE, or log.Default() when a command runs without it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
