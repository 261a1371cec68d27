// core/interval/interval_test.go
package interval

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNorm_SwapsInvertedEndpoints(t *testing.T) {
	if got := Norm(100, 1); got != (Interval{1, 100}) {
		t.Fatalf("Norm(100,1) = %+v, want {1 100}", got)
	}
	if got := Norm(5, 5); got != (Interval{5, 5}) {
		t.Fatalf("Norm(5,5) = %+v, want {5 5}", got)
	}
}

func TestMerge(t *testing.T) {
	cases := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{"empty", nil, nil},
		{"single", []Interval{{1, 10}}, []Interval{{1, 10}}},
		{"overlapping", []Interval{{1, 60}, {50, 100}}, []Interval{{1, 100}}},
		{"adjacent", []Interval{{1, 60}, {61, 100}}, []Interval{{1, 100}}},
		{"gap stays split", []Interval{{1, 30}, {40, 70}}, []Interval{{1, 30}, {40, 70}}},
		{"contained", []Interval{{1, 100}, {20, 30}}, []Interval{{1, 100}}},
		{"unsorted input", []Interval{{40, 70}, {1, 30}}, []Interval{{1, 30}, {40, 70}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Merge(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

// Merging must not depend on input order.
func TestMerge_OrderIndependent(t *testing.T) {
	base := []Interval{{1, 60}, {50, 100}, {200, 210}, {211, 220}, {500, 501}}
	want := Merge(base)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuf := make([]Interval, len(base))
		copy(shuf, base)
		rng.Shuffle(len(shuf), func(a, b int) { shuf[a], shuf[b] = shuf[b], shuf[a] })
		if got := Merge(shuf); !reflect.DeepEqual(got, want) {
			t.Fatalf("Merge order-dependent: %v vs %v (input %v)", got, want, shuf)
		}
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	in := []Interval{{40, 70}, {1, 30}}
	_ = Merge(in)
	if in[0] != (Interval{40, 70}) || in[1] != (Interval{1, 30}) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestTotalLen(t *testing.T) {
	if got := TotalLen([]Interval{{1, 100}}); got != 100 {
		t.Fatalf("TotalLen = %d, want 100", got)
	}
	if got := TotalLen([]Interval{{1, 30}, {40, 70}}); got != 61 {
		t.Fatalf("TotalLen = %d, want 61", got)
	}
}
