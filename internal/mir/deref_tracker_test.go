package mir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ouz-a/tern/internal/source"
	"github.com/ouz-a/tern/internal/types"
)

func TestTrackerRecordAndOrigin(t *testing.T) {
	tr := NewDerefTracker(testCtx())

	origin := Place{Local: 1, Projection: []ProjectionElem{FieldElem{Index: 1, Type: types.TypeI32}}}
	tr.Record(3, origin)

	got, ok := tr.Origin(3)
	require.True(t, ok)
	require.Equal(t, "_1.1", got.String())

	_, ok = tr.Origin(1)
	require.False(t, ok)
	require.Equal(t, 1, tr.Len())
	require.Equal(t, []LocalID{3}, tr.Temps())
}

func TestTrackerRejectsRewrite(t *testing.T) {
	tr := NewDerefTracker(testCtx())
	tr.Record(3, PlaceOf(1))

	require.Panics(t, func() {
		tr.Record(3, PlaceOf(2))
	})
}

func TestTrackerTempsSorted(t *testing.T) {
	tr := NewDerefTracker(testCtx())
	tr.Record(7, PlaceOf(1))
	tr.Record(3, PlaceOf(1))
	tr.Record(5, PlaceOf(1))

	require.Equal(t, []LocalID{3, 5, 7}, tr.Temps())
}

func TestCanonicalizeUntouchedPlace(t *testing.T) {
	b := NewBody("canon", source.Location{})
	b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalUser, Name: "x"})

	tr := NewDerefTracker(testCtx())
	p := Place{Local: 1, Projection: []ProjectionElem{FieldElem{Index: 0, Type: types.TypeI32}}}

	require.Equal(t, p, tr.Canonicalize(b, p))
}

func TestCanonicalizeChains(t *testing.T) {
	// _3 originates from _1.1, _4 from (*_3).1; a place on _4 must fold
	// all the way down to _1.
	b := NewBody("canon_chain", source.Location{})
	b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalUser, Name: "x"})
	b.NewLocal(LocalDecl{Type: types.TypeI32})
	b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalDerefTemp})
	b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalDerefTemp})

	tr := NewDerefTracker(testCtx())
	tr.Record(3, Place{Local: 1, Projection: []ProjectionElem{FieldElem{Index: 1, Type: types.TypeI32}}})
	tr.Record(4, Place{Local: 3, Projection: []ProjectionElem{DerefElem{}, FieldElem{Index: 1, Type: types.TypeI32}}})

	p := Place{Local: 4, Projection: []ProjectionElem{DerefElem{}, FieldElem{Index: 0, Type: types.TypeI32}}}
	require.Equal(t, "(*(*_1.1).1).0", tr.Canonicalize(b, p).String())
}

func TestCanonicalizeMissingOrigin(t *testing.T) {
	b := NewBody("canon_missing", source.Location{})
	b.NewLocal(LocalDecl{Type: types.TypeI32, Kind: LocalDerefTemp})

	tr := NewDerefTracker(testCtx())

	require.Panics(t, func() {
		tr.Canonicalize(b, PlaceOf(1))
	})
}
