package mir

import (
	"github.com/ouz-a/tern/internal/diagnostics"
)

// ValidateDerefs checks the post-splitting invariant: every executable
// place holds at most one Deref projection, and only at index zero. A
// violation is an internal compiler error naming the body and program
// point; it means the splitting pass was skipped or a later pass rebuilt a
// compound deref.
func ValidateDerefs(ctx *PassContext, body *Body) {
	EachPlace(body, func(p *Place, pt Point, pcx PlaceContext) {
		if pcx == PlaceDebug {
			return
		}
		for idx, elem := range p.Projection {
			if _, ok := elem.(DerefElem); ok && idx > 0 {
				diagnostics.ICE(ctx.diags(), diagnostics.ErrEmbeddedDerefRemains, nil,
					"body %q: place %s at b%d[%d] has a deref at projection index %d",
					body.Name, p, pt.Block, pt.Stmt, idx)
			}
		}
	})
}
