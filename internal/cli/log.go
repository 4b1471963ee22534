// Package cli implements the scatter command-line interface.
//
// Commands load a project file, optionally import item lists and avoidance
// zones, run the placement engine and write the result as JSON, a PDF report
// or a sheet of QR labels. The CLI is built with cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - init: Create a project file seeded from the app config defaults
//   - distribute: Place the project's items and export the result
//   - regions: Print the candidate regions left after avoidance
//   - compare: Run what-if scenarios and print a comparison table
//   - preset: Manage named settings presets
//   - config: Show, export and import the app config
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// one line per placed item from the engine. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Placed 42 items (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
