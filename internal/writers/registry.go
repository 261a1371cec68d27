// internal/writers/registry.go

// Package writers dispatches finalized containment calls to an output
// format. Calls are only ever written after the full record stream has
// been reduced, so an interrupted run leaves either nothing or a
// complete report, never a truncated one.
package writers

import (
	"fmt"
	"io"

	"alncontain-core/contain"
	"alncontain/internal/config"
	"alncontain/internal/output"
)

// CallWriter renders a finalized, ordered call set.
type CallWriter func(w io.Writer, calls []contain.Call, header, synthetic bool) error

var callWriters = map[string]CallWriter{}

// RegisterCall installs a handler for a format name (last wins).
func RegisterCall(format string, fn CallWriter) { callWriters[format] = fn }

// WriteCalls renders calls in the named format.
func WriteCalls(format string, w io.Writer, calls []contain.Call, header, synthetic bool) error {
	fn, ok := callWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, calls, header, synthetic)
}

func init() {
	RegisterCall(config.FormatText, output.WriteText)
	RegisterCall(config.FormatJSON, func(w io.Writer, calls []contain.Call, _, _ bool) error {
		return output.WriteJSON(w, calls)
	})
	RegisterCall(config.FormatJSONL, func(w io.Writer, calls []contain.Call, _, _ bool) error {
		return output.WriteJSONL(w, calls)
	})
}
