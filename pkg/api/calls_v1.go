// pkg/api/calls_v1.go
package api

// CallV1 is the stable JSON schema for containment calls. Keep fields,
// names, and types stable. Add new fields only with ",omitempty".
type CallV1 struct {
	QueryID         string   `json:"query_id"`
	SubjectID       string   `json:"subject_id"`
	CoveredFraction float64  `json:"covered_fraction"`
	Support         int      `json:"support"`
	QueryStart      int      `json:"query_start"`
	QueryEnd        int      `json:"query_end"`
	SubjectStart    int      `json:"subject_start"`
	SubjectEnd      int      `json:"subject_end"`
	MeanIdentity    float64  `json:"mean_identity"`
	MinEValue       *float64 `json:"min_evalue,omitempty"`
	MaxBitScore     *float64 `json:"max_bitscore,omitempty"`
}

// MetricsV1 is the stable JSON schema written by alnscore. The layout
// follows the benchmark pipeline's historical report so existing
// dashboards keep parsing it.
type MetricsV1 struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`

	RecallQual    *QualCurveV1 `json:"recall_qual,omitempty"`
	PrecisionQual *QualCurveV1 `json:"precision_qual,omitempty"`

	TruePairs      int `json:"true_pairs"`
	PredictedPairs int `json:"predicted_pairs"`
	ExtraContigs   int `json:"extra_contigs"`
}

// QualCurveV1 is a metric evaluated at ascending minimum-quality cutoffs.
type QualCurveV1 struct {
	Qual   []float64 `json:"qual"`
	Values []float64 `json:"values"`
}
