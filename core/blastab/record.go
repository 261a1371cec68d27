// core/blastab/record.go

// Package blastab reads and writes BLAST tabular (outfmt 6) alignment
// reports: 12 tab-delimited columns, one local alignment per row.
package blastab

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"alncontain-core/interval"
)

// Header is the canonical column header some pipelines prepend to the
// otherwise headerless tabular format. The reader tolerates it; writers
// emit it on request.
const Header = "qseqid\tsseqid\tpident\tlength\tmismatch\tgapopen\tqstart\tqend\tsstart\tsend\tevalue\tbitscore"

// Missing is the placeholder used for integer columns whose value was not
// reported (written as "*" on the wire). Float columns use NaN.
const Missing = -1

// Record is one row of a pairwise alignment report. Coordinates are
// 1-based inclusive; reverse-strand hits may have start > end on either
// side, so consumers should go through QueryInterval/SubjectInterval.
type Record struct {
	QueryID         string
	SubjectID       string
	PercentIdentity float64
	AlignmentLength int
	Mismatches      int
	GapOpens        int
	QueryStart      int
	QueryEnd        int
	SubjectStart    int
	SubjectEnd      int
	EValue          float64
	BitScore        float64
}

// QueryInterval is the strand-normalized query-side span.
func (r Record) QueryInterval() interval.Interval {
	return interval.Norm(r.QueryStart, r.QueryEnd)
}

// SubjectInterval is the strand-normalized subject-side span.
func (r Record) SubjectInterval() interval.Interval {
	return interval.Norm(r.SubjectStart, r.SubjectEnd)
}

// Format renders the record in the 12-column tab layout, restoring "*"
// for missing values so round-tripped files stay byte-identical.
func (r Record) Format() string {
	var b strings.Builder
	b.WriteString(r.QueryID)
	b.WriteByte('\t')
	b.WriteString(r.SubjectID)
	b.WriteByte('\t')
	b.WriteString(formatFloat(r.PercentIdentity))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.AlignmentLength))
	b.WriteByte('\t')
	b.WriteString(formatInt(r.Mismatches))
	b.WriteByte('\t')
	b.WriteString(formatInt(r.GapOpens))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.QueryStart))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.QueryEnd))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.SubjectStart))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.SubjectEnd))
	b.WriteByte('\t')
	b.WriteString(formatFloat(r.EValue))
	b.WriteByte('\t')
	b.WriteString(formatFloat(r.BitScore))
	return b.String()
}

func formatInt(v int) string {
	if v == Missing {
		return "*"
	}
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "*"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFields(f []string) (Record, error) {
	var r Record
	var err error
	r.QueryID = f[0]
	r.SubjectID = f[1]
	if r.PercentIdentity, err = parseFloat(f[2]); err != nil {
		return r, fmt.Errorf("pident: %w", err)
	}
	if !math.IsNaN(r.PercentIdentity) && (r.PercentIdentity < 0 || r.PercentIdentity > 100) {
		return r, fmt.Errorf("pident %v outside [0,100]", r.PercentIdentity)
	}
	if r.AlignmentLength, err = strconv.Atoi(f[3]); err != nil {
		return r, fmt.Errorf("length: %w", err)
	}
	if r.AlignmentLength < 1 {
		return r, fmt.Errorf("length %d must be positive", r.AlignmentLength)
	}
	if r.Mismatches, err = parseInt(f[4]); err != nil {
		return r, fmt.Errorf("mismatch: %w", err)
	}
	if r.GapOpens, err = parseInt(f[5]); err != nil {
		return r, fmt.Errorf("gapopen: %w", err)
	}
	for i, dst := range []*int{&r.QueryStart, &r.QueryEnd, &r.SubjectStart, &r.SubjectEnd} {
		v, err := strconv.Atoi(f[6+i])
		if err != nil {
			return r, fmt.Errorf("coordinate column %d: %w", 7+i, err)
		}
		*dst = v
	}
	if r.EValue, err = parseFloat(f[10]); err != nil {
		return r, fmt.Errorf("evalue: %w", err)
	}
	if r.BitScore, err = parseFloat(f[11]); err != nil {
		return r, fmt.Errorf("bitscore: %w", err)
	}
	return r, nil
}

func parseInt(s string) (int, error) {
	if s == "*" {
		return Missing, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative count %d", v)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	if s == "*" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
