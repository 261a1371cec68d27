// internal/output/calls.go

// Package output renders containment calls. The text format reuses the
// 12-column alignment-report layout the engine consumed, so downstream
// scoring needs no format-specific code.
package output

import (
	"fmt"
	"io"
	"math"

	"alncontain-core/blastab"
	"alncontain-core/contain"
)

// WriteText writes calls as a tab-delimited alignment report. In the
// default filtered mode each call contributes its retained supporting
// rows; in synthetic mode each call becomes one reconstructed row
// spanning the merged query interval. Calls arrive already in the
// engine's deterministic order and are written as-is, so reruns on
// content-identical input are byte-identical.
func WriteText(w io.Writer, calls []contain.Call, header, synthetic bool) error {
	if header {
		if _, err := fmt.Fprintln(w, blastab.Header); err != nil {
			return err
		}
	}
	for _, c := range calls {
		if synthetic {
			if _, err := fmt.Fprintln(w, Synthesize(c).Format()); err != nil {
				return err
			}
			continue
		}
		for _, r := range c.Records {
			if _, err := fmt.Fprintln(w, r.Format()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Synthesize reconstructs a single alignment-report row for a call:
// identity is the coverage-weighted mean (2 decimals), the span is the
// merged query/subject extent, and per-row counts that no longer apply
// (mismatches, gap opens) become "*" placeholders.
func Synthesize(c contain.Call) blastab.Record {
	return blastab.Record{
		QueryID:         c.QueryID,
		SubjectID:       c.SubjectID,
		PercentIdentity: math.Round(c.MeanIdentity*100) / 100,
		AlignmentLength: c.CoveredBases,
		Mismatches:      blastab.Missing,
		GapOpens:        blastab.Missing,
		QueryStart:      c.QuerySpan.Low,
		QueryEnd:        c.QuerySpan.High,
		SubjectStart:    c.SubjectSpan.Low,
		SubjectEnd:      c.SubjectSpan.High,
		EValue:          c.MinEValue,
		BitScore:        c.MaxBitScore,
	}
}
