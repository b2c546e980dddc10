package mir

import (
	"sort"

	"github.com/ouz-a/tern/internal/source"
	"github.com/ouz-a/tern/internal/types"
)

// Patch buffers edits against a body without applying them. A pass walks
// the body, queues new locals and statements here, then applies everything
// in one ordered step after the walk completes. The body's statement lists
// never grow mid-traversal, so indices and iterators held by the walk stay
// valid. Buffering itself cannot fail.
type Patch struct {
	nextLocal LocalID
	newLocals []LocalDecl
	pending   []pendingStmt
}

type pendingStmt struct {
	point Point
	stmt  Statement
	seq   int // preserves queue order among inserts at the same point
}

// NewPatch creates an empty edit buffer for the body. The body is only
// consulted for its current local count; it is not touched until Apply.
func NewPatch(ctx *PassContext, body *Body) *Patch {
	_ = ctx
	return &Patch{nextLocal: LocalID(len(body.Locals))}
}

// NewLocal queues the declaration of a fresh temporary and returns its id.
// Ids are handed out in strictly increasing order and become valid once the
// patch is applied.
func (p *Patch) NewLocal(ty types.SemType, loc source.Location) LocalID {
	return p.newLocal(ty, loc, LocalTemp)
}

// NewDerefTemp queues a fresh temporary tagged as deref-splitting
// provenance, so later analyses can recognize it as synthetic.
func (p *Patch) NewDerefTemp(ty types.SemType, loc source.Location) LocalID {
	return p.newLocal(ty, loc, LocalDerefTemp)
}

func (p *Patch) newLocal(ty types.SemType, loc source.Location, kind LocalKind) LocalID {
	id := p.nextLocal
	p.nextLocal++
	p.newLocals = append(p.newLocals, LocalDecl{Type: ty, Kind: kind, Location: loc})
	return id
}

// InsertBefore queues a statement to be inserted immediately before the
// statement at the given program point. Multiple inserts at the same point
// are applied in queue order. A point whose Stmt index equals the block's
// statement count inserts before the terminator.
func (p *Patch) InsertBefore(pt Point, stmt Statement) {
	p.pending = append(p.pending, pendingStmt{point: pt, stmt: stmt, seq: len(p.pending)})
}

// Apply commits all queued edits to the body in a single ordered step:
// first the new local declarations, then every queued statement. The patch
// is drained and can be reused afterwards.
func (p *Patch) Apply(body *Body) {
	body.Locals = append(body.Locals, p.newLocals...)

	perBlock := make(map[BlockID][]pendingStmt)
	for _, ins := range p.pending {
		perBlock[ins.point.Block] = append(perBlock[ins.point.Block], ins)
	}

	for _, block := range body.Blocks {
		inserts := perBlock[block.ID]
		if len(inserts) == 0 {
			continue
		}
		sort.SliceStable(inserts, func(i, j int) bool {
			return inserts[i].point.Stmt < inserts[j].point.Stmt
		})

		merged := make([]Statement, 0, len(block.Stmts)+len(inserts))
		next := 0
		for i, stmt := range block.Stmts {
			for next < len(inserts) && inserts[next].point.Stmt <= i {
				merged = append(merged, inserts[next].stmt)
				next++
			}
			merged = append(merged, stmt)
		}
		// Remaining inserts target the terminator position.
		for ; next < len(inserts); next++ {
			merged = append(merged, inserts[next].stmt)
		}
		block.Stmts = merged
	}

	p.newLocals = nil
	p.pending = nil
}

// NextLocal reports the id the next queued local would receive.
func (p *Patch) NextLocal() LocalID { return p.nextLocal }
