package mir

// MoveData is the result of move accounting over one body: which places
// the program consumes, and which it merely reads, in program order.
type MoveData struct {
	Moved  []Place
	Copied []Place
}

// GatherMoves walks the body and collects its moved and copied places.
// Every place is canonicalized through the tracker first, so a place based
// on a synthetic deref temporary is accounted against the place the program
// originally named. Run with the tracker returned by SplitDerefs; the
// resulting move set is then identical to what a run before splitting
// would have computed. A nil tracker is valid for bodies that were never
// split.
//
// CopyForDeref assignments are invisible here: they are the rewrite's own
// plumbing, tagged precisely so this accounting never mistakes them for
// user-authored reads. Storage markers and debug info carry no moves.
func GatherMoves(ctx *PassContext, body *Body, tracker *DerefTracker) *MoveData {
	g := &moveGatherer{ctx: ctx, body: body, tracker: tracker, data: &MoveData{}}

	for _, block := range body.Blocks {
		if block == nil {
			continue
		}
		for _, stmt := range block.Stmts {
			g.stmt(stmt)
		}
		if block.Term != nil {
			g.term(block.Term)
		}
	}

	return g.data
}

type moveGatherer struct {
	ctx     *PassContext
	body    *Body
	tracker *DerefTracker
	data    *MoveData
}

func (g *moveGatherer) stmt(stmt Statement) {
	switch s := stmt.(type) {
	case *Assign:
		g.rvalue(s.Rvalue)
	case *StorageLive, *StorageDead, *Nop, *DebugRef:
		// no moves
	}
}

func (g *moveGatherer) rvalue(rv Rvalue) {
	switch r := rv.(type) {
	case *Use:
		g.operand(r.X)
	case *BinaryOp:
		g.operand(r.Left)
		g.operand(r.Right)
	case *CopyForDeref, *Ref:
		// CopyForDeref is synthetic plumbing; Ref borrows without reading out.
	}
}

func (g *moveGatherer) term(term Terminator) {
	switch t := term.(type) {
	case *CondGoto:
		g.operand(t.Cond)
	case *Call:
		for _, arg := range t.Args {
			g.operand(arg)
		}
	case *Drop:
		g.data.Moved = append(g.data.Moved, g.canon(t.Place))
	case *Return, *Goto, *Unreachable:
		// no moves
	}
}

func (g *moveGatherer) operand(op Operand) {
	switch op.Kind {
	case OperandMove:
		g.data.Moved = append(g.data.Moved, g.canon(op.Place))
	case OperandCopy:
		g.data.Copied = append(g.data.Copied, g.canon(op.Place))
	case OperandConst:
		// no place
	}
}

func (g *moveGatherer) canon(p Place) Place {
	if g.tracker == nil {
		return p
	}
	return g.tracker.Canonicalize(g.body, p)
}
