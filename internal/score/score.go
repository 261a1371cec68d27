// internal/score/score.go

// Package score grades predicted containments against a ground-truth set.
// Both inputs are alignment-report TSVs; a (query, subject) row is one
// asserted containment, with the identity column doubling as a quality
// score for threshold-sweep curves.
package score

import (
	"fmt"
	"io"
	"math"

	"alncontain-core/blastab"
	"alncontain/pkg/api"
)

type pair struct {
	q string
	s string
}

// WarnFunc receives diagnostics about discarded prediction rows. May be
// nil.
type WarnFunc func(format string, args ...any)

// Options tunes the scoring pass.
type Options struct {
	// Bins is the number of quality-histogram bins for the sweep curves.
	Bins int
}

// Score reads the truth and predicted reports and computes
// precision/recall, plus recall (and, when predictions carry quality
// scores, precision) swept over ascending minimum-quality cutoffs.
//
// Predicted rows naming contigs absent from the truth set are discarded
// and counted, not failed: benchmark predictions routinely include
// contigs the truth subset never covered.
func Score(truth, predicted io.Reader, opt Options, warnf WarnFunc) (api.MetricsV1, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	if opt.Bins <= 0 {
		opt.Bins = 50
	}

	truePairs, _, err := readPairs(truth)
	if err != nil {
		return api.MetricsV1{}, fmt.Errorf("truth: %w", err)
	}
	predPairs, predHasQual, err := readPairs(predicted)
	if err != nil {
		return api.MetricsV1{}, fmt.Errorf("predicted: %w", err)
	}

	// The truth defines the contig universe.
	contigs := make(map[string]bool, 2*len(truePairs))
	for p := range truePairs {
		contigs[p.q] = true
		contigs[p.s] = true
	}

	extras := make(map[string]bool)
	for p := range predPairs {
		if !contigs[p.q] {
			extras[p.q] = true
		}
		if !contigs[p.s] {
			extras[p.s] = true
		}
	}
	if len(extras) > 0 {
		warnf("found %d extra contigs in predictions; discarding before computing metrics", len(extras))
		for p := range predPairs {
			if extras[p.q] || extras[p.s] {
				delete(predPairs, p)
			}
		}
	}

	tp := 0
	for p := range truePairs {
		if _, ok := predPairs[p]; ok {
			tp++
		}
	}
	fp := len(predPairs) - tp
	fn := len(truePairs) - tp

	m := api.MetricsV1{
		Precision:      ratio(tp, tp+fp),
		Recall:         ratio(tp, tp+fn),
		TruePairs:      len(truePairs),
		PredictedPairs: len(predPairs),
		ExtraContigs:   len(extras),
	}

	if len(truePairs) > 0 {
		m.RecallQual = sweep(truePairs, predPairs, opt.Bins)
	}
	if predHasQual && len(predPairs) > 0 {
		m.PrecisionQual = sweep(predPairs, truePairs, opt.Bins)
	}
	return m, nil
}

// readPairs collapses a report into (query, subject) -> quality. Repeated
// pairs keep the last quality seen. hasQual reports whether any row
// carried a real identity value rather than "*".
func readPairs(r io.Reader) (map[pair]float64, bool, error) {
	rd := blastab.NewReader(r)
	pairs := make(map[pair]float64, 1<<10)
	hasQual := false
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			return pairs, hasQual, nil
		}
		if err != nil {
			return nil, false, err
		}
		qual := rec.PercentIdentity
		if math.IsNaN(qual) {
			qual = 0
		} else {
			hasQual = true
		}
		pairs[pair{q: rec.QueryID, s: rec.SubjectID}] = qual
	}
}

// sweep computes, for each of bins ascending quality cutoffs over the
// reference set's quality range, the fraction of reference pairs at or
// above the cutoff that appear in the other set.
func sweep(ref map[pair]float64, other map[pair]float64, bins int) *api.QualCurveV1 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, q := range ref {
		if q < lo {
			lo = q
		}
		if q > hi {
			hi = q
		}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	step := (hi - lo) / float64(bins)

	curve := &api.QualCurveV1{
		Qual:   make([]float64, 0, bins),
		Values: make([]float64, 0, bins),
	}
	for i := 0; i < bins; i++ {
		cutoff := lo + float64(i)*step
		hit, total := 0, 0
		for p, q := range ref {
			if q < cutoff {
				continue
			}
			total++
			if _, ok := other[p]; ok {
				hit++
			}
		}
		curve.Qual = append(curve.Qual, cutoff)
		curve.Values = append(curve.Values, ratio(hit, total))
	}
	return curve
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
