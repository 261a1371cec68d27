// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"alncontain-core/blastab"
	"alncontain-core/lenindex"
	"alncontain/internal/cli"
	"alncontain/internal/cmdutil"
	"alncontain/internal/config"
	"alncontain/internal/pipeline"
	"alncontain/internal/version"
	"alncontain/internal/writers"
)

// RunContext drives one alncontain invocation: resolve configuration,
// load both length indexes, reduce the record stream, then write the
// report and the run summary.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("alncontain")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "alncontain version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	opts.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	queries, err := lenindex.Load(opts.QueryIndex)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	subjects, err := lenindex.Load(opts.SubjectIndex)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	var src io.ReadCloser
	if opts.Alignments == "-" {
		src = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(opts.Alignments)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		src = fh
	}
	defer func() { _ = src.Close() }()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	calls, stats, err := pipeline.Reduce(ctx,
		pipeline.Config{
			Threads: cfg.Threads,
			Policy:  cfg.Policy(),
			Engine:  cfg.Engine(),
		},
		queries, subjects,
		blastab.NewReader(src),
		func(format string, args ...any) {
			cmdutil.Warnf(stderr, opts.Quiet, format, args...)
		},
	)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	// The report is only written once the whole stream reduced cleanly:
	// interrupted runs leave no partial output.
	if werr := writers.WriteCalls(cfg.Output, outw, calls, opts.Header, cfg.Synthetic); writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if stats.Clamped > 0 {
		cmdutil.Warnf(stderr, opts.Quiet,
			"%d pair(s) covered past the indexed query length (length index mismatch?)", stats.Clamped)
	}
	cmdutil.Summaryf(stderr, opts.Quiet,
		"alncontain: %d records (%d filtered, %d skipped), %d pairs, %d calls",
		stats.Observed, stats.Filtered, stats.Skipped, stats.Pairs, stats.Calls)
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
