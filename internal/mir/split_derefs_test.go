package mir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ouz-a/tern/internal/source"
	"github.com/ouz-a/tern/internal/types"
)

func testCtx() *PassContext {
	return NewPassContext(nil)
}

// scenarioABody builds: _2 = copy (*_1.1).0 where _1: (i32, *(i32, i32)).
func scenarioABody() *Body {
	pair := types.NewTuple(types.TypeI32, types.TypeI32)
	ptrPair := types.NewPointer(pair)

	b := NewBody("scenario_a", source.Location{})
	base := b.NewLocal(LocalDecl{Type: types.NewTuple(types.TypeI32, ptrPair), Kind: LocalUser, Name: "b"})
	dest := b.NewLocal(LocalDecl{Type: types.TypeI32})

	place := Place{Local: base, Projection: []ProjectionElem{
		FieldElem{Index: 1, Type: ptrPair},
		DerefElem{},
		FieldElem{Index: 0, Type: types.TypeI32},
	}}

	blk := b.NewBlock()
	blk.Stmts = append(blk.Stmts, &Assign{Place: PlaceOf(dest), Rvalue: &Use{X: CopyOf(place)}})
	blk.Term = &Return{}
	return b
}

// scenarioBBody builds: _2 = copy (*(*(*_1.1).1).1).1
// where _1: (i32, *(i32, *(i32, *(i32, i32)))).
func scenarioBBody() *Body {
	t3 := types.NewTuple(types.TypeI32, types.TypeI32)
	pt3 := types.NewPointer(t3)
	t2 := types.NewTuple(types.TypeI32, pt3)
	pt2 := types.NewPointer(t2)
	t1 := types.NewTuple(types.TypeI32, pt2)
	pt1 := types.NewPointer(t1)

	b := NewBody("scenario_b", source.Location{})
	base := b.NewLocal(LocalDecl{Type: types.NewTuple(types.TypeI32, pt1), Kind: LocalUser, Name: "d"})
	dest := b.NewLocal(LocalDecl{Type: types.TypeI32})

	place := Place{Local: base, Projection: []ProjectionElem{
		FieldElem{Index: 1, Type: pt1},
		DerefElem{},
		FieldElem{Index: 1, Type: pt2},
		DerefElem{},
		FieldElem{Index: 1, Type: pt3},
		DerefElem{},
		FieldElem{Index: 1, Type: types.TypeI32},
	}}

	blk := b.NewBlock()
	blk.Stmts = append(blk.Stmts, &Assign{Place: PlaceOf(dest), Rvalue: &Use{X: CopyOf(place)}})
	blk.Term = &Return{}
	return b
}

func stmtStrings(blk *BasicBlock) []string {
	out := make([]string, 0, len(blk.Stmts))
	for _, s := range blk.Stmts {
		out = append(out, FormatStmt(s))
	}
	return out
}

func TestSplitSingleEmbeddedDeref(t *testing.T) {
	body := scenarioABody()
	tracker := SplitDerefs(testCtx(), body)

	want := []string{
		"StorageLive(_3)",
		"_3 = CopyForDeref(_1.1)",
		"StorageDead(_3)",
		"_2 = copy (*_3).0",
	}
	require.Equal(t, want, stmtStrings(body.Blocks[0]))

	// The temp holds the pointer reached by _1.1.
	require.Len(t, body.Locals, 4)
	temp := body.Locals[3]
	require.Equal(t, LocalDerefTemp, temp.Kind)
	require.Equal(t, "*(i32, i32)", temp.Type.String())

	origin, ok := tracker.Origin(3)
	require.True(t, ok)
	require.Equal(t, "_1.1", origin.String())
}

func TestSplitDerefChain(t *testing.T) {
	body := scenarioBBody()
	tracker := SplitDerefs(testCtx(), body)

	want := []string{
		"StorageLive(_3)",
		"_3 = CopyForDeref(_1.1)",
		"StorageDead(_3)",
		"StorageLive(_4)",
		"_4 = CopyForDeref((*_3).1)",
		"StorageDead(_4)",
		"StorageLive(_5)",
		"_5 = CopyForDeref((*_4).1)",
		"StorageDead(_5)",
		"_2 = copy (*_5).1",
	}
	require.Equal(t, want, stmtStrings(body.Blocks[0]))

	// Three derefs at index >= 1 produce exactly three temps.
	require.Equal(t, 3, tracker.Len())
	require.Len(t, body.Locals, 6)
	for id := LocalID(3); id <= 5; id++ {
		require.True(t, body.Locals[id].IsDerefTemp(), "local _%d", id)
	}

	// Each temp chains to the previous one.
	o3, _ := tracker.Origin(3)
	o4, _ := tracker.Origin(4)
	o5, _ := tracker.Origin(5)
	require.Equal(t, "_1.1", o3.String())
	require.Equal(t, "(*_3).1", o4.String())
	require.Equal(t, "(*_4).1", o5.String())

	// Canonicalizing the rewritten place recovers the original.
	rewritten := body.Blocks[0].Stmts[9].(*Assign).Rvalue.(*Use).X.Place
	canon := tracker.Canonicalize(body, rewritten)
	require.Equal(t, "(*(*(*_1.1).1).1).1", canon.String())
}

func TestSplitLeavesLeadingDerefAlone(t *testing.T) {
	pair := types.NewTuple(types.TypeI32, types.TypeI32)

	b := NewBody("noop", source.Location{})
	ptr := b.NewLocal(LocalDecl{Type: types.NewPointer(pair), Kind: LocalUser, Name: "p"})
	dest := b.NewLocal(LocalDecl{Type: types.TypeI32})

	place := Place{Local: ptr, Projection: []ProjectionElem{
		DerefElem{},
		FieldElem{Index: 0, Type: types.TypeI32},
	}}
	blk := b.NewBlock()
	blk.Stmts = append(blk.Stmts, &Assign{Place: PlaceOf(dest), Rvalue: &Use{X: CopyOf(place)}})
	blk.Term = &Return{}

	before := FormatBody(b)
	tracker := SplitDerefs(testCtx(), b)

	require.Equal(t, before, FormatBody(b))
	require.Equal(t, 0, tracker.Len())
}

func TestSplitSkipsDebugInfo(t *testing.T) {
	body := scenarioABody()
	debugPlace := body.Blocks[0].Stmts[0].(*Assign).Rvalue.(*Use).X.Place
	body.Blocks[0].Stmts = []Statement{
		&DebugRef{Name: "b0", Place: debugPlace},
	}

	tracker := SplitDerefs(testCtx(), body)

	require.Equal(t, 0, tracker.Len())
	require.Len(t, body.Locals, 3)
	got := body.Blocks[0].Stmts[0].(*DebugRef).Place
	require.Equal(t, "(*_1.1).0", got.String())
}

func TestSplitIsIdempotent(t *testing.T) {
	body := scenarioBBody()

	SplitDerefs(testCtx(), body)
	once := FormatBody(body)

	tracker := SplitDerefs(testCtx(), body)
	twice := FormatBody(body)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second run changed the body (-once +twice):\n%s", diff)
	}
	require.Equal(t, 0, tracker.Len())
}

func TestSplitLivenessPairing(t *testing.T) {
	body := scenarioBBody()
	SplitDerefs(testCtx(), body)

	lives := map[LocalID]int{}
	deads := map[LocalID]int{}
	for _, blk := range body.Blocks {
		for _, stmt := range blk.Stmts {
			switch s := stmt.(type) {
			case *StorageLive:
				lives[s.Local]++
			case *StorageDead:
				deads[s.Local]++
			}
		}
	}

	for id := range body.Locals {
		local := LocalID(id)
		if !body.Locals[id].IsDerefTemp() {
			require.Zero(t, lives[local], "local _%d", id)
			require.Zero(t, deads[local], "local _%d", id)
			continue
		}
		require.Equal(t, 1, lives[local], "StorageLive count for _%d", id)
		require.Equal(t, 1, deads[local], "StorageDead count for _%d", id)
	}
}

func TestSplitTrackerCompleteness(t *testing.T) {
	body := scenarioBBody()
	tracker := SplitDerefs(testCtx(), body)

	for id := range body.Locals {
		_, ok := tracker.Origin(LocalID(id))
		require.Equal(t, body.Locals[id].IsDerefTemp(), ok, "local _%d", id)
	}
}

func TestSplitTerminatorPlace(t *testing.T) {
	pair := types.NewTuple(types.TypeI32, types.TypeI32)
	ptrPair := types.NewPointer(pair)

	b := NewBody("drop_chain", source.Location{})
	base := b.NewLocal(LocalDecl{Type: types.NewTuple(types.TypeI32, ptrPair), Kind: LocalUser, Name: "x"})

	b0 := b.NewBlock()
	b1 := b.NewBlock()
	b0.Term = &Drop{
		Place: Place{Local: base, Projection: []ProjectionElem{
			FieldElem{Index: 1, Type: ptrPair},
			DerefElem{},
			FieldElem{Index: 0, Type: types.TypeI32},
		}},
		Target: b1.ID,
	}
	b1.Term = &Return{}

	SplitDerefs(testCtx(), b)

	want := []string{
		"StorageLive(_2)",
		"_2 = CopyForDeref(_1.1)",
		"StorageDead(_2)",
	}
	require.Equal(t, want, stmtStrings(b.Blocks[0]))
	require.Equal(t, "drop (*_2).0 -> b1", FormatTerm(b.Blocks[0].Term))
}

func TestSplitThenValidate(t *testing.T) {
	body := scenarioBBody()
	SplitDerefs(testCtx(), body)
	require.NotPanics(t, func() {
		ValidateDerefs(testCtx(), body)
	})
}
