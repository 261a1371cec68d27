// internal/scoreapp/app.go
package scoreapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"alncontain/internal/cmdutil"
	"alncontain/internal/jsonutil"
	"alncontain/internal/score"
	"alncontain/internal/scorecli"
	"alncontain/internal/version"
	"alncontain/internal/writers"
)

// RunContext drives one alnscore invocation.
func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := scorecli.NewFlagSet("alnscore")
	fs.SetOutput(io.Discard)

	opts, err := scorecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "alnscore version %s\n", version.Version)
		return 0
	}

	truth, err := os.Open(opts.TruthFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = truth.Close() }()

	pred, err := os.Open(opts.PredictedFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = pred.Close() }()

	metrics, err := score.Score(truth, pred, score.Options{Bins: opts.Bins},
		func(format string, args ...any) {
			cmdutil.Warnf(stderr, opts.Quiet, format, args...)
		})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	dst := io.Writer(outw)
	if opts.Output != "" && opts.Output != "-" {
		fh, err := os.Create(opts.Output)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() { _ = fh.Close() }()
		dst = fh
	}
	if err := jsonutil.EncodePretty(dst, metrics); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
