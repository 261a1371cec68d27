// internal/output/jsonl.go
package output

import (
	"encoding/json"
	"io"

	"alncontain-core/contain"
)

// WriteJSONL writes one v1 call object per line, for downstream tools
// that stream rather than slurp.
func WriteJSONL(w io.Writer, calls []contain.Call) error {
	enc := json.NewEncoder(w)
	for _, c := range calls {
		if err := enc.Encode(ToAPICall(c)); err != nil {
			return err
		}
	}
	return nil
}
