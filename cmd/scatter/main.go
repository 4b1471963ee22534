// Scatter: blue-noise placement of rectangles around avoidance zones
//
// A command-line tool that spreads rectangular items evenly inside a
// bounded region, exporting the layout as JSON, a PDF report or QR labels.
//
// Build:
//   go build -o scatter ./cmd/scatter
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o scatter.exe ./cmd/scatter
//   GOOS=darwin  GOARCH=arm64 go build -o scatter-darwin ./cmd/scatter

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/scatter/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
