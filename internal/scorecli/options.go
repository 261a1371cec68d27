// internal/scorecli/options.go
package scorecli

import (
	"flag"
	"fmt"

	"alncontain/internal/cliutil"
	"alncontain/internal/version"
)

// Options holds all CLI flags and arguments for alnscore.
type Options struct {
	TruthFile     string
	PredictedFile string
	Output        string // file path, "" or "-" for stdout
	Bins          int
	Quiet         bool
	Version       bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: assess performance of a contig containment tool

Compares predicted containments against ground truth (both as 12-column
alignment reports) and writes precision/recall metrics as JSON.

License: MIT
Version: %s

Usage of %s:
  %s [options] truth.tsv predicted.tsv
`, name, version.Version, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags. The truth and predicted
// reports may be given as flags or as the two positional arguments.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.TruthFile, "truth", "", "true containments in tabular format [*]")
	fs.StringVar(&opt.PredictedFile, "predicted", "", "predicted containments in tabular format [*]")
	fs.StringVar(&opt.Output, "output", "", "file to save results to (default stdout)")
	fs.StringVar(&opt.Output, "o", "", "alias of --output")
	fs.IntVar(&opt.Bins, "bins", 50, "quality-sweep histogram bins [50]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	switch len(posArgs) {
	case 0:
	case 2:
		if opt.TruthFile != "" || opt.PredictedFile != "" {
			return opt, fmt.Errorf("give the reports positionally or by flag, not both")
		}
		opt.TruthFile, opt.PredictedFile = posArgs[0], posArgs[1]
	default:
		return opt, fmt.Errorf("want exactly two positional reports (truth, predicted), got %d", len(posArgs))
	}

	if opt.TruthFile == "" || opt.PredictedFile == "" {
		return opt, fmt.Errorf("--truth and --predicted are required")
	}
	if opt.Bins < 1 {
		return opt, fmt.Errorf("--bins %d must be >= 1", opt.Bins)
	}
	return opt, nil
}
