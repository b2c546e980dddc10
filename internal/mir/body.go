package mir

import (
	"github.com/ouz-a/tern/internal/diagnostics"
	"github.com/ouz-a/tern/internal/source"
	"github.com/ouz-a/tern/internal/types"
)

// LocalID identifies a storage slot within a body.
// It indexes directly into Body.Locals; slot 0 is the return place.
type LocalID uint32

// BlockID identifies a basic block within a body.
// It indexes directly into Body.Blocks.
type BlockID uint32

// ReturnLocal is the slot the function's return value is written to.
const ReturnLocal LocalID = 0

// LocalKind records the provenance of a local slot.
type LocalKind int

const (
	LocalUser      LocalKind = iota // declared in source
	LocalArg                        // function argument
	LocalTemp                       // compiler-introduced temporary
	LocalDerefTemp                  // temporary introduced by deref splitting
)

func (k LocalKind) String() string {
	switch k {
	case LocalUser:
		return "user"
	case LocalArg:
		return "arg"
	case LocalTemp:
		return "temp"
	case LocalDerefTemp:
		return "deref-temp"
	default:
		return "unknown"
	}
}

// LocalDecl declares one typed storage slot.
type LocalDecl struct {
	Type     types.SemType
	Kind     LocalKind
	Name     string // user name, empty for temporaries
	Location source.Location
}

// IsDerefTemp reports whether this slot was created by deref splitting.
func (d *LocalDecl) IsDerefTemp() bool { return d.Kind == LocalDerefTemp }

// Body is a function lowered to place-based mid-level IR: a set of typed
// local slots and a list of basic blocks over them.
type Body struct {
	Name     string
	Locals   []LocalDecl // indexed by LocalID; slot 0 is the return place
	ArgCount int         // locals 1..ArgCount are the arguments
	Blocks   []*BasicBlock
	Location source.Location
}

// BasicBlock is a straight-line statement list ended by one terminator.
type BasicBlock struct {
	ID       BlockID
	Stmts    []Statement
	Term     Terminator
	Location source.Location
}

// Point is a program point inside a body: the statement at index Stmt of
// block Block. Stmt == len(Stmts) designates the block's terminator.
type Point struct {
	Block BlockID
	Stmt  int
}

// NewBody creates a body with a void return slot and no blocks.
func NewBody(name string, loc source.Location) *Body {
	return &Body{
		Name:     name,
		Locals:   []LocalDecl{{Type: types.TypeVoid, Kind: LocalTemp}},
		Location: loc,
	}
}

// NewLocal appends a local declaration and returns its id.
func (b *Body) NewLocal(decl LocalDecl) LocalID {
	id := LocalID(len(b.Locals))
	b.Locals = append(b.Locals, decl)
	return id
}

// NewBlock appends an empty basic block and returns it.
func (b *Body) NewBlock() *BasicBlock {
	block := &BasicBlock{ID: BlockID(len(b.Blocks))}
	b.Blocks = append(b.Blocks, block)
	return block
}

// Local returns the declaration of the given slot.
func (b *Body) Local(ctx *PassContext, id LocalID) *LocalDecl {
	if int(id) >= len(b.Locals) {
		diagnostics.ICE(ctx.diags(), diagnostics.ErrBadLocal, nil,
			"body %q has no local _%d (have %d locals)", b.Name, id, len(b.Locals))
	}
	return &b.Locals[id]
}

// PassContext carries the shared state a body transform needs. Passes never
// reach for ambient globals; the context is threaded explicitly into every
// constructor and entry point.
type PassContext struct {
	Diags *diagnostics.DiagnosticBag
}

// NewPassContext creates a pass context reporting into the given bag.
func NewPassContext(bag *diagnostics.DiagnosticBag) *PassContext {
	return &PassContext{Diags: bag}
}

func (c *PassContext) diags() *diagnostics.DiagnosticBag {
	if c == nil {
		return nil
	}
	return c.Diags
}
