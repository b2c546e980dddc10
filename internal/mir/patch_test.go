package mir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ouz-a/tern/internal/source"
	"github.com/ouz-a/tern/internal/types"
)

func twoStmtBody() *Body {
	b := NewBody("patched", source.Location{})
	b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalUser, Name: "a"})
	blk := b.NewBlock()
	blk.Stmts = append(blk.Stmts,
		&Assign{Place: PlaceOf(1), Rvalue: &Use{X: ConstOf(types.TypeI32, "1")}},
		&Assign{Place: PlaceOf(1), Rvalue: &Use{X: ConstOf(types.TypeI32, "2")}},
	)
	blk.Term = &Return{}
	return b
}

func TestPatchNewLocalIDs(t *testing.T) {
	b := twoStmtBody()
	p := NewPatch(testCtx(), b)

	require.Equal(t, LocalID(2), p.NextLocal())
	first := p.NewLocal(types.TypeI32, source.Location{})
	second := p.NewDerefTemp(types.TypeBool, source.Location{})
	require.Equal(t, LocalID(2), first)
	require.Equal(t, LocalID(3), second)
	require.Equal(t, LocalID(4), p.NextLocal())

	// Not visible until applied.
	require.Len(t, b.Locals, 2)
	p.Apply(b)
	require.Len(t, b.Locals, 4)
	require.Equal(t, LocalTemp, b.Locals[2].Kind)
	require.Equal(t, LocalDerefTemp, b.Locals[3].Kind)
	require.True(t, types.TypeBool.Equals(b.Locals[3].Type))
}

func TestPatchInsertBeforeStatement(t *testing.T) {
	b := twoStmtBody()
	p := NewPatch(testCtx(), b)

	p.InsertBefore(Point{Block: 0, Stmt: 1}, &Nop{})
	p.Apply(b)

	got := stmtStrings(b.Blocks[0])
	require.Equal(t, []string{"_1 = const i32 1", "nop", "_1 = const i32 2"}, got)
}

func TestPatchInsertBeforeTerminator(t *testing.T) {
	b := twoStmtBody()
	p := NewPatch(testCtx(), b)

	p.InsertBefore(Point{Block: 0, Stmt: 2}, &Nop{})
	p.Apply(b)

	got := stmtStrings(b.Blocks[0])
	require.Equal(t, []string{"_1 = const i32 1", "_1 = const i32 2", "nop"}, got)
}

func TestPatchPreservesQueueOrderAtOnePoint(t *testing.T) {
	b := twoStmtBody()
	p := NewPatch(testCtx(), b)

	pt := Point{Block: 0, Stmt: 0}
	p.InsertBefore(pt, &StorageLive{Local: 1})
	p.InsertBefore(pt, &Assign{Place: PlaceOf(1), Rvalue: &Use{X: ConstOf(types.TypeI32, "0")}})
	p.InsertBefore(pt, &StorageDead{Local: 1})
	p.Apply(b)

	got := stmtStrings(b.Blocks[0])
	want := []string{
		"StorageLive(_1)",
		"_1 = const i32 0",
		"StorageDead(_1)",
		"_1 = const i32 1",
		"_1 = const i32 2",
	}
	require.Equal(t, want, got)
}

func TestPatchInterleavesPoints(t *testing.T) {
	b := twoStmtBody()
	p := NewPatch(testCtx(), b)

	// Queued out of point order on purpose.
	p.InsertBefore(Point{Block: 0, Stmt: 2}, &StorageDead{Local: 1})
	p.InsertBefore(Point{Block: 0, Stmt: 0}, &StorageLive{Local: 1})
	p.Apply(b)

	got := stmtStrings(b.Blocks[0])
	want := []string{
		"StorageLive(_1)",
		"_1 = const i32 1",
		"_1 = const i32 2",
		"StorageDead(_1)",
	}
	require.Equal(t, want, got)
}

func TestPatchApplyDrains(t *testing.T) {
	b := twoStmtBody()
	p := NewPatch(testCtx(), b)

	p.InsertBefore(Point{Block: 0, Stmt: 0}, &Nop{})
	p.Apply(b)
	require.Len(t, b.Blocks[0].Stmts, 3)

	// A second apply must be a no-op for the drained queue.
	p.Apply(b)
	require.Len(t, b.Blocks[0].Stmts, 3)
	require.Len(t, b.Locals, 2)
}
