// core/contain/config.go

// Package contain decides which query contigs are contained in which
// subject contigs, by folding a stream of pairwise alignment records into
// per-pair query-coverage interval sets and thresholding the merged
// covered fraction.
package contain

import "fmt"

// Policy selects how malformed or out-of-range records are handled.
type Policy int

const (
	// Abort stops the run at the first bad record. The default: skipping
	// silently undercounts coverage.
	Abort Policy = iota
	// Skip drops bad records and counts them for the run summary.
	Skip
)

func (p Policy) String() string {
	if p == Skip {
		return "skip"
	}
	return "abort"
}

// ParsePolicy maps the configuration surface's abort|skip strings.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "abort":
		return Abort, nil
	case "skip":
		return Skip, nil
	}
	return Abort, fmt.Errorf("unknown on-malformed policy %q (want abort or skip)", s)
}

// Config holds the decision thresholds. There are deliberately no
// defaults: containment correctness is sensitive to every one of these,
// so each must be set explicitly.
type Config struct {
	// MinIdentity drops records with percent identity below this value
	// before they contribute coverage. Range [0,100].
	MinIdentity float64
	// MinAlnLen drops records whose alignment spans fewer bases. >= 1.
	MinAlnLen int
	// Threshold is the covered fraction at or above which a pair becomes
	// a containment call. Range (0,1].
	Threshold float64
	// KeepRecords retains each pair's surviving records so the report
	// writer can emit the filtered subset of original rows.
	KeepRecords bool
}

// Validate rejects unset or out-of-range thresholds.
func (c Config) Validate() error {
	if c.MinIdentity < 0 || c.MinIdentity > 100 {
		return fmt.Errorf("min identity %v outside [0,100] (must be set explicitly)", c.MinIdentity)
	}
	if c.MinAlnLen < 1 {
		return fmt.Errorf("min alignment length %d must be >= 1", c.MinAlnLen)
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("containment threshold %v outside (0,1]", c.Threshold)
	}
	return nil
}
