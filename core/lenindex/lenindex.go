// core/lenindex/lenindex.go
package lenindex

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MalformedIndexError reports an unusable length-index file. The index is
// the denominator for every coverage fraction, so any defect here is fatal.
type MalformedIndexError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedIndexError) Error() string {
	return fmt.Sprintf("%s:%d: malformed length index: %s", e.Path, e.Line, e.Reason)
}

// UnknownSequenceError reports a lookup for an identifier the index has
// never seen.
type UnknownSequenceError struct {
	ID string
}

func (e *UnknownSequenceError) Error() string {
	return fmt.Sprintf("unknown sequence %q in length index", e.ID)
}

// Index maps sequence identifiers to their lengths. Immutable after Load;
// safe for concurrent readers.
type Index struct {
	lengths map[string]int
}

// Load parses a FASTA-index style file: identifier in column 1, length in
// column 2, any trailing columns (offsets, line widths) ignored. Blank
// lines and '#' comments are skipped. Duplicate identifiers are rejected
// rather than overwritten: a silent last-wins would corrupt coverage
// denominators downstream.
func Load(path string) (*Index, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	idx := &Index{lengths: make(map[string]int, 1<<10)}
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil, &MalformedIndexError{Path: path, Line: ln, Reason: "want at least 2 columns (id, length)"}
		}
		id := f[0]
		length, err := strconv.Atoi(f[1])
		if err != nil {
			return nil, &MalformedIndexError{Path: path, Line: ln, Reason: fmt.Sprintf("bad length %q", f[1])}
		}
		if length < 0 {
			return nil, &MalformedIndexError{Path: path, Line: ln, Reason: fmt.Sprintf("negative length %d", length)}
		}
		if _, dup := idx.lengths[id]; dup {
			return nil, &MalformedIndexError{Path: path, Line: ln, Reason: fmt.Sprintf("duplicate identifier %q", id)}
		}
		idx.lengths[id] = length
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return idx, nil
}

// LengthOf returns the recorded length for id.
func (x *Index) LengthOf(id string) (int, error) {
	n, ok := x.lengths[id]
	if !ok {
		return 0, &UnknownSequenceError{ID: id}
	}
	return n, nil
}

// Has reports whether id is present.
func (x *Index) Has(id string) bool {
	_, ok := x.lengths[id]
	return ok
}

// Len is the number of sequences indexed.
func (x *Index) Len() int { return len(x.lengths) }
