package mir

import (
	"github.com/ouz-a/tern/internal/source"
	"github.com/ouz-a/tern/internal/types"
)

// Statement is the base interface for MIR statements.
type Statement interface {
	mirStmt()
	Loc() *source.Location
}

// Assign evaluates an rvalue and writes it into a place.
type Assign struct {
	Place    Place
	Rvalue   Rvalue
	Location source.Location
}

func (a *Assign) mirStmt()              {}
func (a *Assign) Loc() *source.Location { return &a.Location }

// StorageLive marks the start of a local's storage lifetime.
type StorageLive struct {
	Local    LocalID
	Location source.Location
}

func (s *StorageLive) mirStmt()              {}
func (s *StorageLive) Loc() *source.Location { return &s.Location }

// StorageDead marks the end of a local's storage lifetime.
type StorageDead struct {
	Local    LocalID
	Location source.Location
}

func (s *StorageDead) mirStmt()              {}
func (s *StorageDead) Loc() *source.Location { return &s.Location }

// Nop does nothing. Patched-out statements become Nops so indices stay valid.
type Nop struct {
	Location source.Location
}

func (n *Nop) mirStmt()              {}
func (n *Nop) Loc() *source.Location { return &n.Location }

// DebugRef associates a user-visible name with a place for debug info.
// It is non-executable: transforms that rewrite executable accesses skip it.
type DebugRef struct {
	Name     string
	Place    Place
	Location source.Location
}

func (d *DebugRef) mirStmt()              {}
func (d *DebugRef) Loc() *source.Location { return &d.Location }

// Rvalue is the base interface for the right-hand side of an assignment.
type Rvalue interface {
	mirRvalue()
}

// Use produces the value of a single operand.
type Use struct {
	X Operand
}

func (u *Use) mirRvalue() {}

// CopyForDeref copies a place's value so a following leading Deref can be
// applied to the copy. Semantically a copy, but tagged so move analysis can
// tell it apart from a user-authored copy and never treat it as consuming.
type CopyForDeref struct {
	Place Place
}

func (c *CopyForDeref) mirRvalue() {}

// Ref takes the address of a place.
type Ref struct {
	Place Place
}

func (r *Ref) mirRvalue() {}

// BinaryOp combines two operands.
type BinaryOp struct {
	Op    BinOp
	Left  Operand
	Right Operand
	Type  types.SemType
}

func (b *BinaryOp) mirRvalue() {}

// BinOp names a binary operator.
type BinOp string

const (
	BinAdd BinOp = "+"
	BinSub BinOp = "-"
	BinMul BinOp = "*"
	BinEq  BinOp = "=="
	BinNe  BinOp = "!="
	BinLt  BinOp = "<"
)

// OperandKind distinguishes how an operand uses its place.
type OperandKind int

const (
	OperandCopy  OperandKind = iota // read without consuming
	OperandMove                     // read and consume
	OperandConst                    // no place involved
)

func (k OperandKind) String() string {
	switch k {
	case OperandCopy:
		return "copy"
	case OperandMove:
		return "move"
	case OperandConst:
		return "const"
	default:
		return "unknown"
	}
}

// Operand is a value read: a copy or move out of a place, or a constant.
type Operand struct {
	Kind  OperandKind
	Place Place         // valid unless Kind == OperandConst
	Type  types.SemType // constant type
	Value string        // constant value
}

// CopyOf builds a copying operand for a place.
func CopyOf(p Place) Operand {
	return Operand{Kind: OperandCopy, Place: p}
}

// MoveOf builds a consuming operand for a place.
func MoveOf(p Place) Operand {
	return Operand{Kind: OperandMove, Place: p}
}

// ConstOf builds a constant operand.
func ConstOf(ty types.SemType, value string) Operand {
	return Operand{Kind: OperandConst, Type: ty, Value: value}
}
