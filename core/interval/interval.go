// core/interval/interval.go
package interval

import "sort"

// Interval is an inclusive 1-based range with Low <= High.
type Interval struct {
	Low  int
	High int
}

// Norm returns the ordered interval for a pair of endpoints. Reverse-strand
// alignment hits report start > end; callers normalize through here.
func Norm(a, b int) Interval {
	if a > b {
		return Interval{Low: b, High: a}
	}
	return Interval{Low: a, High: b}
}

// Len is the number of bases the interval spans (inclusive endpoints).
func (iv Interval) Len() int { return iv.High - iv.Low + 1 }

// Merge collapses ivs into a minimal disjoint cover, sorted by Low.
// Overlapping and book-ended intervals ([1,60]+[61,100]) merge; any gap of
// one or more bases keeps them apart. The input slice is not modified.
func Merge(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Low != sorted[j].Low {
			return sorted[i].Low < sorted[j].Low
		}
		return sorted[i].High < sorted[j].High
	})

	out := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.Low <= last.High+1 {
			if iv.High > last.High {
				last.High = iv.High
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// TotalLen sums the lengths of a disjoint interval set.
func TotalLen(ivs []Interval) int {
	n := 0
	for _, iv := range ivs {
		n += iv.Len()
	}
	return n
}
