package mir

import (
	"sort"

	"github.com/ouz-a/tern/internal/diagnostics"
)

// DerefTracker is the side table produced by deref splitting: it maps each
// synthetic temporary back to the place whose pointer value it holds. Move
// and resource-lifetime analyses consult it to see through the rewrite and
// account against the places the program originally named, instead of the
// temporaries the pass invented.
//
// The table is append-only while the pass runs: once a temporary's origin
// is recorded it never changes. After the pass it is only read.
type DerefTracker struct {
	ctx     *PassContext
	origins map[LocalID]Place
}

// NewDerefTracker creates an empty tracker.
func NewDerefTracker(ctx *PassContext) *DerefTracker {
	return &DerefTracker{ctx: ctx, origins: make(map[LocalID]Place)}
}

// Record stores the originating place for a synthetic temporary. Recording
// a second origin for the same temporary is an internal compiler error.
func (t *DerefTracker) Record(temp LocalID, origin Place) {
	if prev, ok := t.origins[temp]; ok {
		diagnostics.ICE(t.ctx.diags(), diagnostics.ErrTrackerRewrite, nil,
			"origin of _%d recorded twice: %s then %s", temp, prev, origin)
	}
	t.origins[temp] = origin
}

// Origin returns the recorded origin of a local. The second return value is
// false when the local is not a synthetic deref temporary.
func (t *DerefTracker) Origin(local LocalID) (Place, bool) {
	p, ok := t.origins[local]
	return p, ok
}

// Len reports how many temporaries have been recorded.
func (t *DerefTracker) Len() int { return len(t.origins) }

// Temps returns the recorded temporaries in ascending id order.
func (t *DerefTracker) Temps() []LocalID {
	out := make([]LocalID, 0, len(t.origins))
	for id := range t.origins {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Canonicalize rewrites a place based on a deref temporary back to its
// pre-splitting form by substituting recorded origins until the base is an
// original local. A base that the body declares as a deref temporary but
// that has no recorded origin is an internal compiler error: the table is
// incomplete, which means it was not threaded from the splitting pass.
func (t *DerefTracker) Canonicalize(body *Body, p Place) Place {
	for {
		origin, ok := t.origins[p.Local]
		if !ok {
			if body.Local(t.ctx, p.Local).IsDerefTemp() {
				diagnostics.ICE(t.ctx.diags(), diagnostics.ErrTrackerUnresolved, nil,
					"body %q: deref temporary _%d has no recorded origin", body.Name, p.Local)
			}
			return p
		}
		p = origin.Extend(p.Projection...)
	}
}
