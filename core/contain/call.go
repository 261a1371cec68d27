// core/contain/call.go
package contain

import (
	"alncontain-core/blastab"
	"alncontain-core/interval"
)

// Call is one decided containment: the query is covered by alignments to
// the subject at or above the configured threshold.
type Call struct {
	QueryID   string
	SubjectID string

	// CoveredFraction is merged aligned length / query length, clamped
	// to 1.0.
	CoveredFraction float64
	// CoveredBases is the unclamped merged aligned length.
	CoveredBases int
	// Support is the number of records that contributed coverage.
	Support int

	// QuerySpan and SubjectSpan bound all contributing alignments on
	// each side.
	QuerySpan   interval.Interval
	SubjectSpan interval.Interval

	// MeanIdentity is the coverage-weighted mean percent identity of the
	// supporting records.
	MeanIdentity float64
	// MinEValue and MaxBitScore summarize hit strength; NaN when every
	// supporting record carried a "*" placeholder.
	MinEValue   float64
	MaxBitScore float64

	// Records holds the supporting rows when Config.KeepRecords is set,
	// in input order.
	Records []blastab.Record
}

// Stats summarizes one engine run for the mandatory end-of-run report.
type Stats struct {
	// Observed counts every record handed to the engine, including ones
	// later filtered or skipped.
	Observed int
	// Filtered counts records dropped by the identity/length quality
	// gate.
	Filtered int
	// Skipped counts malformed or out-of-range records dropped under the
	// Skip policy.
	Skipped int
	// Clamped counts pairs whose merged coverage exceeded the query
	// length (a length-index mismatch or malformed input).
	Clamped int
	// Pairs is the number of distinct (query, subject) pairs seen.
	Pairs int
	// Calls is the number of containment calls emitted.
	Calls int
}

// Add folds other into s.
func (s *Stats) Add(other Stats) {
	s.Observed += other.Observed
	s.Filtered += other.Filtered
	s.Skipped += other.Skipped
	s.Clamped += other.Clamped
	s.Pairs += other.Pairs
	s.Calls += other.Calls
}
