package diagnostics

import (
	"fmt"

	"github.com/ouz-a/tern/internal/source"
)

// ICE reports an internal compiler error: an invariant that earlier stages
// guaranteed has been observed broken. The diagnostic is recorded in the bag
// (when one is supplied) so a driver can flush it before the process dies,
// then compilation is aborted by panicking. There is no recovery path; the
// input IR cannot be locally repaired.
func ICE(bag *DiagnosticBag, code string, loc *source.Location, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if bag != nil {
		diag := NewError(msg).WithCode(code)
		if loc != nil {
			diag = diag.WithLabel(loc, "invariant violated here")
		}
		bag.Add(diag)
		bag.EmitAll()
	}
	panic(fmt.Sprintf("INTERNAL COMPILER ERROR [%s]: %s", code, msg))
}
