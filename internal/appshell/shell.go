// internal/appshell/shell.go

// Package appshell is the shared process entrypoint for the alncontain
// binaries: signal-driven cancellation plus exit-code normalization.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the app-level entrypoint each binary provides.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main wires SIGINT/SIGTERM into a cancelable context, runs the app, and
// exits. A run interrupted mid-stream reports 130 even when the app layer
// returned cleanly, so callers can tell an aborted benchmark from a
// finished one.
func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
