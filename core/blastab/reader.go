// core/blastab/reader.go
package blastab

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MalformedRecordError reports a report row that could not be parsed. The
// reader stays usable after returning one, so callers running a skip
// policy can keep pulling records.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: malformed alignment record: %s", e.Line, e.Reason)
}

// Reader streams alignment records one row at a time, so arbitrarily large
// reports never have to fit in memory. Not restartable: re-open the source
// to scan again.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader wraps r. Blank lines, '#' comments, and a leading "qseqid..."
// header row are skipped.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	// Identifier columns can hold long provenance strings; allow wide rows.
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, 16*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next record, io.EOF at end of input, or a
// *MalformedRecordError carrying the offending line number.
func (rd *Reader) Next() (Record, error) {
	for rd.sc.Scan() {
		rd.line++
		line := strings.TrimRight(rd.sc.Text(), "\r\n")
		if line == "" || line[0] == '#' {
			continue
		}
		if rd.line == 1 && strings.HasPrefix(line, "qseqid\t") {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) != 12 {
			return Record{}, &MalformedRecordError{Line: rd.line, Reason: fmt.Sprintf("want 12 columns, got %d", len(f))}
		}
		rec, err := parseFields(f)
		if err != nil {
			return Record{}, &MalformedRecordError{Line: rd.line, Reason: err.Error()}
		}
		return rec, nil
	}
	if err := rd.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("scan alignment report: %w", err)
	}
	return Record{}, io.EOF
}

// Line is the 1-based number of the most recently consumed input line.
func (rd *Reader) Line() int { return rd.line }
