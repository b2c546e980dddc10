package mir

import "github.com/ouz-a/tern/internal/source"

// Terminator is the base interface for MIR block terminators.
type Terminator interface {
	mirTerm()
	Loc() *source.Location
}

// Return exits the current body. The return value lives in local _0.
type Return struct {
	Location source.Location
}

func (r *Return) mirTerm()              {}
func (r *Return) Loc() *source.Location { return &r.Location }

// Goto jumps unconditionally to another block.
type Goto struct {
	Target   BlockID
	Location source.Location
}

func (g *Goto) mirTerm()              {}
func (g *Goto) Loc() *source.Location { return &g.Location }

// CondGoto jumps based on a boolean operand.
type CondGoto struct {
	Cond     Operand
	Then     BlockID
	Else     BlockID
	Location source.Location
}

func (c *CondGoto) mirTerm()              {}
func (c *CondGoto) Loc() *source.Location { return &c.Location }

// Call invokes a function, writes the result into Dest and continues at
// Target.
type Call struct {
	Func     string
	Args     []Operand
	Dest     Place
	Target   BlockID
	Location source.Location
}

func (c *Call) mirTerm()              {}
func (c *Call) Loc() *source.Location { return &c.Location }

// Drop runs the cleanup logic for a place and continues at Target. Inserted
// by resource-lifetime elaboration; consumes the place.
type Drop struct {
	Place    Place
	Target   BlockID
	Location source.Location
}

func (d *Drop) mirTerm()              {}
func (d *Drop) Loc() *source.Location { return &d.Location }

// Unreachable marks an invalid control-flow path.
type Unreachable struct {
	Location source.Location
}

func (u *Unreachable) mirTerm()              {}
func (u *Unreachable) Loc() *source.Location { return &u.Location }
