// internal/writers/registry_test.go
package writers

import (
	"bytes"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alncontain-core/contain"
	"alncontain-core/interval"
	"alncontain/internal/config"
)

func call(q, s string) contain.Call {
	return contain.Call{
		QueryID: q, SubjectID: s,
		CoveredFraction: 1.0, CoveredBases: 10, Support: 1,
		QuerySpan:   interval.Interval{Low: 1, High: 10},
		SubjectSpan: interval.Interval{Low: 1, High: 10},
		MeanIdentity: 99, MinEValue: 1e-5, MaxBitScore: 20,
	}
}

func TestWriteCalls_TextAndJSONRegistered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCalls(config.FormatText, &buf, []contain.Call{call("q", "s")}, false, true))
	assert.True(t, strings.HasPrefix(buf.String(), "q\ts\t"))

	buf.Reset()
	require.NoError(t, WriteCalls(config.FormatJSON, &buf, []contain.Call{call("q", "s")}, false, false))
	assert.Contains(t, buf.String(), `"query_id": "q"`)
}

func TestWriteCalls_UnknownFormat(t *testing.T) {
	err := WriteCalls("xml", io.Discard, nil, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no writer registered")
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(io.EOF))
}
