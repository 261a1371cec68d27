// core/contain/accumulator.go
package contain

import (
	"math"
	"sort"

	"alncontain-core/blastab"
	"alncontain-core/interval"
	"alncontain-core/lenindex"
)

type pairKey struct {
	q string
	s string
}

// pairAcc is the growing per-(query,subject) state. Containment is
// evaluated on query coverage only; the subject side is tracked just far
// enough to report each call's subject span.
type pairAcc struct {
	qivs    []interval.Interval
	span    interval.Interval
	support int

	idWeighted float64
	idWeight   float64
	minEValue  float64
	maxBit     float64

	records []blastab.Record
}

// Accumulator is the single-pass streaming reducer at the heart of the
// engine. It is not safe for concurrent Observe calls; parallel callers
// run one Accumulator per worker and combine them with Merge.
type Accumulator struct {
	cfg      Config
	queries  *lenindex.Index
	subjects *lenindex.Index
	pairs    map[pairKey]*pairAcc
	stats    Stats
}

// NewAccumulator builds a reducer over the two immutable length indexes.
func NewAccumulator(cfg Config, queries, subjects *lenindex.Index) *Accumulator {
	return &Accumulator{
		cfg:      cfg,
		queries:  queries,
		subjects: subjects,
		pairs:    make(map[pairKey]*pairAcc, 1<<10),
	}
}

// Observe folds one alignment record into the per-pair state.
//
// Errors: *lenindex.UnknownSequenceError when either identifier is absent
// from its index (always fatal upstream: without the denominator no
// covered fraction exists), *CoordinateRangeError when the record's span
// leaves [1, length] (policy-controlled upstream). Records failing the
// identity/length gate are dropped silently and counted.
func (a *Accumulator) Observe(rec blastab.Record) error {
	a.stats.Observed++

	qlen, err := a.queries.LengthOf(rec.QueryID)
	if err != nil {
		return err
	}
	slen, err := a.subjects.LengthOf(rec.SubjectID)
	if err != nil {
		return err
	}

	qiv := rec.QueryInterval()
	siv := rec.SubjectInterval()
	if qiv.Low < 1 || qiv.High > qlen {
		return &CoordinateRangeError{
			QueryID: rec.QueryID, SubjectID: rec.SubjectID,
			Side: "query", Low: qiv.Low, High: qiv.High, Length: qlen,
		}
	}
	if siv.Low < 1 || siv.High > slen {
		return &CoordinateRangeError{
			QueryID: rec.QueryID, SubjectID: rec.SubjectID,
			Side: "subject", Low: siv.Low, High: siv.High, Length: slen,
		}
	}

	// Quality gate. A "*" identity cannot clear any explicit threshold.
	if math.IsNaN(rec.PercentIdentity) || rec.PercentIdentity < a.cfg.MinIdentity ||
		rec.AlignmentLength < a.cfg.MinAlnLen {
		a.stats.Filtered++
		return nil
	}

	key := pairKey{q: rec.QueryID, s: rec.SubjectID}
	acc, ok := a.pairs[key]
	if !ok {
		acc = &pairAcc{
			span:      siv,
			minEValue: math.NaN(),
			maxBit:    math.NaN(),
		}
		a.pairs[key] = acc
	} else {
		if siv.Low < acc.span.Low {
			acc.span.Low = siv.Low
		}
		if siv.High > acc.span.High {
			acc.span.High = siv.High
		}
	}

	acc.qivs = append(acc.qivs, qiv)
	acc.support++
	w := float64(qiv.Len())
	acc.idWeighted += rec.PercentIdentity * w
	acc.idWeight += w
	if !math.IsNaN(rec.EValue) && (math.IsNaN(acc.minEValue) || rec.EValue < acc.minEValue) {
		acc.minEValue = rec.EValue
	}
	if !math.IsNaN(rec.BitScore) && (math.IsNaN(acc.maxBit) || rec.BitScore > acc.maxBit) {
		acc.maxBit = rec.BitScore
	}
	if a.cfg.KeepRecords {
		acc.records = append(acc.records, rec)
	}
	return nil
}

// CountSkipped records a malformed or out-of-range record dropped under
// the Skip policy.
func (a *Accumulator) CountSkipped() { a.stats.Skipped++ }

// Merge folds other's pairs and counters into a. Used by the parallel
// pipeline after its workers finish; each record was observed by exactly
// one worker, so the counters add up cleanly.
func (a *Accumulator) Merge(other *Accumulator) {
	for key, oacc := range other.pairs {
		acc, ok := a.pairs[key]
		if !ok {
			a.pairs[key] = oacc
			continue
		}
		acc.qivs = append(acc.qivs, oacc.qivs...)
		acc.support += oacc.support
		if oacc.span.Low < acc.span.Low {
			acc.span.Low = oacc.span.Low
		}
		if oacc.span.High > acc.span.High {
			acc.span.High = oacc.span.High
		}
		acc.idWeighted += oacc.idWeighted
		acc.idWeight += oacc.idWeight
		if !math.IsNaN(oacc.minEValue) && (math.IsNaN(acc.minEValue) || oacc.minEValue < acc.minEValue) {
			acc.minEValue = oacc.minEValue
		}
		if !math.IsNaN(oacc.maxBit) && (math.IsNaN(acc.maxBit) || oacc.maxBit > acc.maxBit) {
			acc.maxBit = oacc.maxBit
		}
		acc.records = append(acc.records, oacc.records...)
	}
	a.stats.Add(other.stats)
}

// Finalize merges every pair's intervals, thresholds the covered
// fractions, and returns the calls in ascending (QueryID, SubjectID)
// order so output is reproducible regardless of input record order.
func (a *Accumulator) Finalize() ([]Call, Stats) {
	keys := make([]pairKey, 0, len(a.pairs))
	for key := range a.pairs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].q != keys[j].q {
			return keys[i].q < keys[j].q
		}
		return keys[i].s < keys[j].s
	})

	stats := a.stats
	stats.Pairs = len(a.pairs)

	var calls []Call
	for _, key := range keys {
		acc := a.pairs[key]
		merged := interval.Merge(acc.qivs)

		qlen, err := a.queries.LengthOf(key.q)
		if err != nil {
			// Observe already resolved every id; unreachable.
			continue
		}
		bases := interval.TotalLen(merged)
		covered := float64(bases) / float64(qlen)
		if covered > 1 {
			covered = 1
			stats.Clamped++
		}
		if covered < a.cfg.Threshold {
			continue
		}
		calls = append(calls, Call{
			QueryID:         key.q,
			SubjectID:       key.s,
			CoveredFraction: covered,
			CoveredBases:    bases,
			Support:         acc.support,
			QuerySpan:       interval.Interval{Low: merged[0].Low, High: merged[len(merged)-1].High},
			SubjectSpan:     acc.span,
			MeanIdentity:    acc.idWeighted / acc.idWeight,
			MinEValue:       acc.minEValue,
			MaxBitScore:     acc.maxBit,
			Records:         acc.records,
		})
	}
	stats.Calls = len(calls)
	return calls, stats
}

// Stats returns the counters accumulated so far, without finalizing.
func (a *Accumulator) Stats() Stats { return a.stats }
