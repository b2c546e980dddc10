package mir

// PlaceContext says how a visited place is being accessed.
type PlaceContext int

const (
	PlaceLoad  PlaceContext = iota // read by an operand or rvalue
	PlaceStore                     // written as an assignment or call destination
	PlaceDebug                     // referenced by debug info only, never executed
)

// PlaceVisitor receives every place occurrence in a body, in program order,
// with its program point and access context. The place is handed out by
// pointer so a visitor may rewrite it; the surrounding statement list must
// not be grown or shrunk during the walk (use a Patch for that).
type PlaceVisitor func(p *Place, pt Point, pcx PlaceContext)

// EachPlace walks every statement and terminator of the body and invokes fn
// for each place occurrence. Within one statement, source operands are
// visited before the written place, matching evaluation order.
func EachPlace(body *Body, fn PlaceVisitor) {
	for _, block := range body.Blocks {
		if block == nil {
			continue
		}
		for i, stmt := range block.Stmts {
			pt := Point{Block: block.ID, Stmt: i}
			visitStmtPlaces(stmt, pt, fn)
		}
		if block.Term != nil {
			pt := Point{Block: block.ID, Stmt: len(block.Stmts)}
			visitTermPlaces(block.Term, pt, fn)
		}
	}
}

func visitStmtPlaces(stmt Statement, pt Point, fn PlaceVisitor) {
	switch s := stmt.(type) {
	case *Assign:
		visitRvaluePlaces(s.Rvalue, pt, fn)
		fn(&s.Place, pt, PlaceStore)
	case *DebugRef:
		fn(&s.Place, pt, PlaceDebug)
	case *StorageLive, *StorageDead, *Nop:
		// no places
	}
}

func visitRvaluePlaces(rv Rvalue, pt Point, fn PlaceVisitor) {
	switch r := rv.(type) {
	case *Use:
		visitOperandPlace(&r.X, pt, fn)
	case *CopyForDeref:
		fn(&r.Place, pt, PlaceLoad)
	case *Ref:
		fn(&r.Place, pt, PlaceLoad)
	case *BinaryOp:
		visitOperandPlace(&r.Left, pt, fn)
		visitOperandPlace(&r.Right, pt, fn)
	}
}

func visitTermPlaces(term Terminator, pt Point, fn PlaceVisitor) {
	switch t := term.(type) {
	case *CondGoto:
		visitOperandPlace(&t.Cond, pt, fn)
	case *Call:
		for i := range t.Args {
			visitOperandPlace(&t.Args[i], pt, fn)
		}
		fn(&t.Dest, pt, PlaceStore)
	case *Drop:
		fn(&t.Place, pt, PlaceLoad)
	case *Return, *Goto, *Unreachable:
		// no places
	}
}

func visitOperandPlace(op *Operand, pt Point, fn PlaceVisitor) {
	if op.Kind == OperandConst {
		return
	}
	fn(&op.Place, pt, PlaceLoad)
}
