// internal/output/json.go
package output

import (
	"io"
	"math"

	"alncontain-core/contain"
	"alncontain/internal/jsonutil"
	"alncontain/pkg/api"
)

// ToAPICall converts a domain Call to the stable wire schema (v1).
// NaN hit-strength summaries (every supporting row carried "*") are
// omitted rather than serialized, since JSON has no NaN.
func ToAPICall(c contain.Call) api.CallV1 {
	v := api.CallV1{
		QueryID:         c.QueryID,
		SubjectID:       c.SubjectID,
		CoveredFraction: c.CoveredFraction,
		Support:         c.Support,
		QueryStart:      c.QuerySpan.Low,
		QueryEnd:        c.QuerySpan.High,
		SubjectStart:    c.SubjectSpan.Low,
		SubjectEnd:      c.SubjectSpan.High,
		MeanIdentity:    c.MeanIdentity,
	}
	if !math.IsNaN(c.MinEValue) {
		e := c.MinEValue
		v.MinEValue = &e
	}
	if !math.IsNaN(c.MaxBitScore) {
		b := c.MaxBitScore
		v.MaxBitScore = &b
	}
	return v
}

// WriteJSON writes calls as a single pretty-printed JSON array of v1
// call objects.
func WriteJSON(w io.Writer, calls []contain.Call) error {
	out := make([]api.CallV1, 0, len(calls))
	for _, c := range calls {
		out = append(out, ToAPICall(c))
	}
	return jsonutil.EncodePretty(w, out)
}
