package mir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ouz-a/tern/internal/source"
	"github.com/ouz-a/tern/internal/types"
)

func placeStrings(places []Place) []string {
	out := make([]string, 0, len(places))
	for _, p := range places {
		out = append(out, p.String())
	}
	return out
}

func TestGatherMovesClassifiesOperands(t *testing.T) {
	b := NewBody("moves", source.Location{})
	x := b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalUser, Name: "x"})
	y := b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalUser, Name: "y"})
	z := b.NewLocal(LocalDecl{Type: types.TypeI32})

	blk := b.NewBlock()
	blk.Stmts = append(blk.Stmts,
		&Assign{Place: PlaceOf(z), Rvalue: &Use{X: MoveOf(PlaceOf(x))}},
		&Assign{Place: PlaceOf(z), Rvalue: &Use{X: CopyOf(PlaceOf(y))}},
		&Assign{Place: PlaceOf(z), Rvalue: &BinaryOp{
			Op:    BinAdd,
			Left:  CopyOf(PlaceOf(y)),
			Right: MoveOf(PlaceOf(z)),
			Type:  types.TypeI32,
		}},
		&Assign{Place: PlaceOf(z), Rvalue: &Ref{Place: PlaceOf(x)}},
		&Assign{Place: PlaceOf(z), Rvalue: &Use{X: ConstOf(types.TypeI32, "7")}},
	)
	blk.Term = &Return{}

	data := GatherMoves(testCtx(), b, nil)

	require.Equal(t, []string{"_1", "_3"}, placeStrings(data.Moved))
	require.Equal(t, []string{"_2", "_2"}, placeStrings(data.Copied))
}

func TestGatherMovesDropAndCall(t *testing.T) {
	b := NewBody("moves_term", source.Location{})
	x := b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalUser, Name: "x"})
	r := b.NewLocal(LocalDecl{Type: types.TypeI32})

	b0 := b.NewBlock()
	b1 := b.NewBlock()
	b0.Term = &Call{
		Func:   "consume",
		Args:   []Operand{MoveOf(PlaceOf(x)), CopyOf(PlaceOf(r))},
		Dest:   PlaceOf(r),
		Target: b1.ID,
	}
	b1.Term = &Drop{Place: PlaceOf(x), Target: b1.ID}

	data := GatherMoves(testCtx(), b, nil)

	require.Equal(t, []string{"_1", "_1"}, placeStrings(data.Moved))
	require.Equal(t, []string{"_2"}, placeStrings(data.Copied))
}

// The move set computed after splitting, canonicalized through the
// tracker, matches the one computed on the unsplit body.
func TestGatherMovesUnchangedBySplitting(t *testing.T) {
	before := GatherMoves(testCtx(), scenarioBBody(), nil)

	body := scenarioBBody()
	tracker := SplitDerefs(testCtx(), body)
	after := GatherMoves(testCtx(), body, tracker)

	require.Equal(t, placeStrings(before.Moved), placeStrings(after.Moved))
	require.Equal(t, placeStrings(before.Copied), placeStrings(after.Copied))
}

func TestGatherMovesIgnoresSyntheticCopies(t *testing.T) {
	body := scenarioABody()
	tracker := SplitDerefs(testCtx(), body)

	data := GatherMoves(testCtx(), body, tracker)

	// The CopyForDeref temp never shows up; the one copy is accounted
	// against the original compound place.
	require.Empty(t, data.Moved)
	require.Equal(t, []string{"(*_1.1).0"}, placeStrings(data.Copied))
}
