// core/contain/errors.go
package contain

import "fmt"

// CoordinateRangeError reports a record whose coordinates fall outside
// [1, length] of the indexed sequence. Policy-controlled, like parse
// errors: the record is either skipped (counted) or aborts the run.
type CoordinateRangeError struct {
	QueryID   string
	SubjectID string
	Side      string // "query" or "subject"
	Low       int
	High      int
	Length    int
}

func (e *CoordinateRangeError) Error() string {
	return fmt.Sprintf("record %s/%s: %s coordinates [%d,%d] outside [1,%d]",
		e.QueryID, e.SubjectID, e.Side, e.Low, e.High, e.Length)
}
