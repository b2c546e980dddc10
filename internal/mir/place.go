package mir

import (
	"github.com/ouz-a/tern/internal/diagnostics"
	"github.com/ouz-a/tern/internal/types"
)

// Place describes a storage location: a base local refined by an ordered
// list of projections. Places are plain value aggregates; nothing here
// mutates a place in-hand.
type Place struct {
	Local      LocalID
	Projection []ProjectionElem
}

// ProjectionElem is one refinement step in a place. The variant set is
// closed: every consumer matches exhaustively over it. All variants except
// Deref refine within the same storage region; Deref redirects the access
// to the pointed-to region.
type ProjectionElem interface {
	projectionElem()
}

// FieldElem selects a positional field of an aggregate. Type is the field's
// type, recorded at construction so projections stay self-describing.
type FieldElem struct {
	Index int
	Type  types.SemType
}

// IndexElem selects an array or slice element at a runtime index held in
// another local.
type IndexElem struct {
	Local LocalID
}

// ConstantIndexElem selects an element at a compile-time known offset.
type ConstantIndexElem struct {
	Offset    int
	MinLength int
	FromEnd   bool
}

// SubsliceElem selects a contiguous range of an array or slice.
type SubsliceElem struct {
	From    int
	To      int
	FromEnd bool
}

// DowncastElem refines an enum place to one of its variants.
type DowncastElem struct {
	Variant int
}

// DerefElem follows a pointer to the region it points at.
type DerefElem struct{}

func (FieldElem) projectionElem()         {}
func (IndexElem) projectionElem()         {}
func (ConstantIndexElem) projectionElem() {}
func (SubsliceElem) projectionElem()      {}
func (DowncastElem) projectionElem()      {}
func (DerefElem) projectionElem()         {}

// PlaceOf returns the projection-free place for a local.
func PlaceOf(local LocalID) Place {
	return Place{Local: local}
}

// PlaceFrom builds a place from a base local and a projection suffix taken
// from an existing list. The suffix is copied, so the new place does not
// alias the source list.
func PlaceFrom(base LocalID, suffix []ProjectionElem) Place {
	if len(suffix) == 0 {
		return Place{Local: base}
	}
	proj := make([]ProjectionElem, len(suffix))
	copy(proj, suffix)
	return Place{Local: base, Projection: proj}
}

// Extend returns p with extra projections appended, without mutating p.
func (p Place) Extend(extra ...ProjectionElem) Place {
	if len(extra) == 0 {
		return p
	}
	proj := make([]ProjectionElem, 0, len(p.Projection)+len(extra))
	proj = append(proj, p.Projection...)
	proj = append(proj, extra...)
	return Place{Local: p.Local, Projection: proj}
}

// Prefix returns the sub-place consisting of the first n projections.
func (p Place) Prefix(n int) Place {
	return Place{Local: p.Local, Projection: p.Projection[:n]}
}

// EachProjection walks the projection list in order, pairing each element
// with the prefix place it is applied to. Returning false stops the walk.
func (p Place) EachProjection(fn func(prefix Place, elem ProjectionElem) bool) {
	for i, elem := range p.Projection {
		if !fn(p.Prefix(i), elem) {
			return
		}
	}
}

// HasEmbeddedDeref reports whether the projection list contains a Deref
// anywhere past the first element. A single leading Deref is the
// normalized form and does not count.
func (p Place) HasEmbeddedDeref() bool {
	for i, elem := range p.Projection {
		if i == 0 {
			continue
		}
		if _, ok := elem.(DerefElem); ok {
			return true
		}
	}
	return false
}

// String renders the place in dump syntax, e.g. ((*_2).0).
func (p Place) String() string {
	return formatPlace(p)
}

// PlaceType computes the type a place evaluates to by folding its
// projections over the base local's declared type. The body is trusted to
// be type-correct; any mismatch is an internal compiler error.
func PlaceType(ctx *PassContext, body *Body, p Place) types.SemType {
	ty := body.Local(ctx, p.Local).Type
	variant := -1

	for _, elem := range p.Projection {
		switch e := elem.(type) {
		case DerefElem:
			pointee, ok := types.Pointee(ty)
			if !ok {
				diagnostics.ICE(ctx.diags(), diagnostics.ErrDerefOfNonPointer, nil,
					"body %q: deref projection over non-pointer type %s in %s", body.Name, ty, p)
			}
			ty = pointee
			variant = -1
		case FieldElem:
			ty = fieldType(ctx, body, p, ty, variant, e)
			variant = -1
		case IndexElem, ConstantIndexElem:
			arr, ok := ty.(*types.ArrayType)
			if !ok {
				diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
					"body %q: index projection over non-array type %s in %s", body.Name, ty, p)
			}
			ty = arr.Elem
			variant = -1
		case SubsliceElem:
			arr, ok := ty.(*types.ArrayType)
			if !ok {
				diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
					"body %q: subslice projection over non-array type %s in %s", body.Name, ty, p)
			}
			ty = types.NewSlice(arr.Elem)
			variant = -1
		case DowncastElem:
			enum, ok := ty.(*types.EnumType)
			if !ok || e.Variant < 0 || e.Variant >= len(enum.Variants) {
				diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
					"body %q: downcast to variant %d over type %s in %s", body.Name, e.Variant, ty, p)
			}
			variant = e.Variant
		default:
			diagnostics.ICE(ctx.diags(), diagnostics.ErrBadProjection, nil,
				"body %q: unknown projection element %T in %s", body.Name, elem, p)
		}
	}

	return ty
}

func fieldType(ctx *PassContext, body *Body, p Place, ty types.SemType, variant int, e FieldElem) types.SemType {
	var got types.SemType

	switch t := ty.(type) {
	case *types.TupleType:
		if e.Index < 0 || e.Index >= len(t.Elems) {
			diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
				"body %q: field %d out of range for %s in %s", body.Name, e.Index, ty, p)
		}
		got = t.Elems[e.Index]
	case *types.StructType:
		if e.Index < 0 || e.Index >= len(t.Fields) {
			diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
				"body %q: field %d out of range for %s in %s", body.Name, e.Index, ty, p)
		}
		got = t.Fields[e.Index].Type
	case *types.EnumType:
		if variant < 0 {
			diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
				"body %q: enum field access without downcast in %s", body.Name, p)
		}
		fields := t.Variants[variant].Fields
		if e.Index < 0 || e.Index >= len(fields) {
			diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
				"body %q: field %d out of range for variant %d of %s in %s", body.Name, e.Index, variant, ty, p)
		}
		got = fields[e.Index]
	default:
		diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
			"body %q: field projection over non-aggregate type %s in %s", body.Name, ty, p)
	}

	if e.Type != nil && !got.Equals(e.Type) {
		diagnostics.ICE(ctx.diags(), diagnostics.ErrPlaceTypeMismatch, nil,
			"body %q: field %d of %s is %s, projection says %s in %s", body.Name, e.Index, ty, got, e.Type, p)
	}
	return got
}
