// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"

	"alncontain/internal/cliutil"
	"alncontain/internal/config"
	"alncontain/internal/version"
)

// Options holds all CLI flags and arguments for alncontain.
type Options struct {
	// Inputs
	Alignments   string
	QueryIndex   string
	SubjectIndex string
	ConfigFile   string

	// Decision thresholds / engine settings (overlay onto config.Config;
	// only flags the user actually passed take effect).
	MinIdentity float64
	MinAlnLen   int
	Threshold   float64
	OnMalformed string
	Output      string
	Synthetic   bool
	Threads     int

	// Output & misc
	Header  bool // true unless --no-header
	Quiet   bool
	Version bool

	set map[string]bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: contig containment calls from tabular alignment reports

Reads a 12-column alignment report plus query/subject length indexes and
emits the (query, subject) pairs whose merged query coverage clears the
containment threshold.

License: MIT
Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
// A single positional argument is accepted as the alignment report path.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Inputs
	fs.StringVar(&opt.Alignments, "alignments", "-", "alignment report (file or '-' for stdin)")
	fs.StringVar(&opt.Alignments, "a", "-", "alias of --alignments")
	fs.StringVar(&opt.QueryIndex, "query-index", "", "length index of the query set [*]")
	fs.StringVar(&opt.QueryIndex, "q", "", "alias of --query-index")
	fs.StringVar(&opt.SubjectIndex, "subject-index", "", "length index of the subject set [*]")
	fs.StringVar(&opt.SubjectIndex, "s", "", "alias of --subject-index")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML config file (flags and env override it)")

	// Decision thresholds
	fs.Float64Var(&opt.MinIdentity, "min-identity", config.Unset, "minimum percent identity per record, 0-100 [*]")
	fs.IntVar(&opt.MinAlnLen, "min-length", 1, "minimum alignment length per record [1]")
	fs.Float64Var(&opt.Threshold, "threshold", config.Unset, "covered fraction required for a call, (0,1] [*]")
	fs.StringVar(&opt.OnMalformed, "on-malformed", "abort", "malformed-record policy: abort | skip [abort]")

	// Output
	fs.StringVar(&opt.Output, "output", config.FormatText, "output format: text | json | jsonl [text]")
	fs.StringVar(&opt.Output, "o", config.FormatText, "alias of --output")
	fs.BoolVar(&opt.Synthetic, "synthetic", false, "emit one synthetic record per call instead of the supporting rows [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text output [false]")

	// Performance / misc
	fs.IntVar(&opt.Threads, "threads", 0, "worker threads (0 = all CPUs) [0]")
	fs.IntVar(&opt.Threads, "t", 0, "alias of --threads")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings and the run summary [false]")
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
	opt.Header = !noHeader

	opt.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opt.set[f.Name] = true })

	switch len(posArgs) {
	case 0:
		if opt.Alignments == "" {
			opt.Alignments = "-"
		}
	case 1:
		opt.Alignments = posArgs[0]
		opt.set["alignments"] = true
	default:
		return opt, fmt.Errorf("at most one positional alignment report, got %d", len(posArgs))
	}

	if opt.Version {
		return opt, nil
	}
	if opt.QueryIndex == "" || opt.SubjectIndex == "" {
		return opt, fmt.Errorf("--query-index and --subject-index are required")
	}
	return opt, nil
}

// Passed reports whether the user set the named flag (or an alias).
func (o Options) Passed(names ...string) bool {
	for _, n := range names {
		if o.set[n] {
			return true
		}
	}
	return false
}

// Apply overlays every explicitly-passed flag onto cfg, completing the
// file < environment < flags precedence chain.
func (o Options) Apply(cfg *config.Config) {
	if o.Passed("min-identity") {
		cfg.MinIdentity = o.MinIdentity
	}
	if o.Passed("min-length") {
		cfg.MinAlnLen = o.MinAlnLen
	}
	if o.Passed("threshold") {
		cfg.Threshold = o.Threshold
	}
	if o.Passed("on-malformed") {
		cfg.OnMalformed = o.OnMalformed
	}
	if o.Passed("output", "o") {
		cfg.Output = o.Output
	}
	if o.Passed("synthetic") {
		cfg.Synthetic = o.Synthetic
	}
	if o.Passed("threads", "t") {
		cfg.Threads = o.Threads
	}
}
