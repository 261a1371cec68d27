// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alncontain-core/blastab"
	"alncontain-core/contain"
	"alncontain-core/lenindex"
)

func index(t *testing.T, data string) *lenindex.Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lens.fai")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	idx, err := lenindex.Load(path)
	require.NoError(t, err)
	return idx
}

func row(q, s string, pident float64, qs, qe, ss, se int) string {
	return fmt.Sprintf("%s\t%s\t%v\t%d\t0\t0\t%d\t%d\t%d\t%d\t1e-30\t100", q, s, pident, qe-qs+1, qs, qe, ss, se)
}

func engineConfig() contain.Config {
	return contain.Config{MinIdentity: 90, MinAlnLen: 1, Threshold: 0.9}
}

func TestReduce_EndToEnd(t *testing.T) {
	queries := index(t, "qa\t100\nqb\t100\nqc\t100\n")
	subjects := index(t, "s1\t5000\ns2\t5000\n")

	report := strings.Join([]string{
		row("qb", "s1", 99, 1, 100, 1, 100),
		row("qa", "s2", 98, 1, 60, 1, 60),
		row("qa", "s2", 97, 50, 100, 50, 100),
		row("qc", "s1", 99, 1, 40, 1, 40), // 40% coverage, below threshold
	}, "\n") + "\n"

	for _, threads := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			rd := blastab.NewReader(strings.NewReader(report))
			calls, stats, err := Reduce(context.Background(),
				Config{Threads: threads, Policy: contain.Abort, Engine: engineConfig()},
				queries, subjects, rd, nil)
			require.NoError(t, err)

			require.Len(t, calls, 2)
			assert.Equal(t, "qa", calls[0].QueryID, "ascending query order")
			assert.Equal(t, "qb", calls[1].QueryID)
			assert.Equal(t, 1.0, calls[0].CoveredFraction)
			assert.Equal(t, 4, stats.Observed)
			assert.Equal(t, 3, stats.Pairs)
			assert.Equal(t, 2, stats.Calls)
			assert.Equal(t, 0, stats.Skipped)
		})
	}
}

func TestReduce_SkipPolicyCountsBadRows(t *testing.T) {
	queries := index(t, "qa\t100\n")
	subjects := index(t, "s1\t5000\n")

	report := "not\ta\tvalid\trow\n" + // malformed: wrong column count
		row("qa", "s1", 99, 1, 100, 1, 100) + "\n" +
		row("qa", "s1", 99, 150, 200, 1, 51) + "\n" // query coords out of range

	var warnings []string
	rd := blastab.NewReader(strings.NewReader(report))
	calls, stats, err := Reduce(context.Background(),
		Config{Threads: 2, Policy: contain.Skip, Engine: engineConfig()},
		queries, subjects, rd,
		func(format string, args ...any) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		})
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, 2, stats.Skipped, "one malformed row, one range error")
	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "line 1")
}

func TestReduce_AbortPolicyStopsWithContext(t *testing.T) {
	queries := index(t, "qa\t100\n")
	subjects := index(t, "s1\t5000\n")

	report := row("qa", "s1", 99, 1, 100, 1, 100) + "\n" +
		"short\trow\n"

	rd := blastab.NewReader(strings.NewReader(report))
	_, _, err := Reduce(context.Background(),
		Config{Threads: 1, Policy: contain.Abort, Engine: engineConfig()},
		queries, subjects, rd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "after 1 records")
}

func TestReduce_UnknownSequenceFatalEvenWhenSkipping(t *testing.T) {
	queries := index(t, "qa\t100\n")
	subjects := index(t, "s1\t5000\n")

	report := row("ghost", "s1", 99, 1, 100, 1, 100) + "\n"
	rd := blastab.NewReader(strings.NewReader(report))
	_, _, err := Reduce(context.Background(),
		Config{Threads: 2, Policy: contain.Skip, Engine: engineConfig()},
		queries, subjects, rd, nil)
	require.Error(t, err)

	var uerr *lenindex.UnknownSequenceError
	assert.ErrorAs(t, err, &uerr)
}

func TestReduce_Canceled(t *testing.T) {
	queries := index(t, "qa\t100\n")
	subjects := index(t, "s1\t5000\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rd := blastab.NewReader(strings.NewReader(row("qa", "s1", 99, 1, 100, 1, 100) + "\n"))
	calls, _, err := Reduce(ctx,
		Config{Threads: 2, Policy: contain.Abort, Engine: engineConfig()},
		queries, subjects, rd, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, calls, "no partial output on cancellation")
}

// Identical inputs in permuted order give identical call sets at any
// worker count.
func TestReduce_DeterministicAcrossOrderAndThreads(t *testing.T) {
	queries := index(t, "qa\t100\nqb\t100\n")
	subjects := index(t, "s1\t5000\ns2\t5000\n")

	rows := []string{
		row("qa", "s1", 99, 1, 60, 1, 60),
		row("qa", "s1", 98, 50, 100, 50, 100),
		row("qb", "s2", 97, 1, 100, 1, 100),
		row("qa", "s2", 96, 1, 100, 1, 100),
	}

	run := func(report string, threads int) []contain.Call {
		rd := blastab.NewReader(strings.NewReader(report))
		calls, _, err := Reduce(context.Background(),
			Config{Threads: threads, Policy: contain.Abort, Engine: engineConfig()},
			queries, subjects, rd, nil)
		require.NoError(t, err)
		return calls
	}

	want := run(strings.Join(rows, "\n")+"\n", 1)
	reversed := []string{rows[3], rows[2], rows[1], rows[0]}
	for _, threads := range []int{1, 4} {
		got := run(strings.Join(reversed, "\n")+"\n", threads)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].QueryID, got[i].QueryID)
			assert.Equal(t, want[i].SubjectID, got[i].SubjectID)
			assert.Equal(t, want[i].CoveredFraction, got[i].CoveredFraction)
			assert.Equal(t, want[i].Support, got[i].Support)
		}
	}
}
