package types

import (
	"fmt"
	"strings"
)

// SemType is the semantic representation of types in the Tern mid-level IR.
//
// Design principles:
// - Types are immutable after creation
// - SemType equality is structural (deep comparison)
// - All types can be displayed as strings
type SemType interface {
	// String returns a human-readable representation of the type
	String() string

	// Equals checks structural equality with another type
	Equals(other SemType) bool

	// isType is a marker method to prevent external implementation
	isType()
}

// PrimitiveType represents built-in scalar types (i32, str, bool, etc.)
type PrimitiveType struct {
	name TYPE_NAME
}

func NewPrimitive(name TYPE_NAME) *PrimitiveType {
	return &PrimitiveType{name: name}
}

func (p *PrimitiveType) String() string { return string(p.name) }
func (p *PrimitiveType) isType()        {}
func (p *PrimitiveType) Equals(other SemType) bool {
	if o, ok := other.(*PrimitiveType); ok {
		return p.name == o.name
	}
	return false
}

// GetName returns the primitive type name
func (p *PrimitiveType) GetName() TYPE_NAME {
	return p.name
}

// PointerType represents a pointer or reference to another memory region.
//
// Dereferencing a place of this type redirects the access to the pointed-to
// region, which is why the deref-splitting pass treats it specially.
type PointerType struct {
	Elem SemType
}

func NewPointer(elem SemType) *PointerType {
	return &PointerType{Elem: elem}
}

func (p *PointerType) String() string { return "*" + p.Elem.String() }
func (p *PointerType) isType()        {}
func (p *PointerType) Equals(other SemType) bool {
	if o, ok := other.(*PointerType); ok {
		return p.Elem.Equals(o.Elem)
	}
	return false
}

// TupleType represents an anonymous aggregate with positional fields.
type TupleType struct {
	Elems []SemType
}

func NewTuple(elems ...SemType) *TupleType {
	return &TupleType{Elems: elems}
}

func (t *TupleType) String() string {
	parts := make([]string, 0, len(t.Elems))
	for _, e := range t.Elems {
		parts = append(parts, e.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) isType() {}
func (t *TupleType) Equals(other SemType) bool {
	o, ok := other.(*TupleType)
	if !ok || len(t.Elems) != len(o.Elems) {
		return false
	}
	for i, e := range t.Elems {
		if !e.Equals(o.Elems[i]) {
			return false
		}
	}
	return true
}

// ArrayType represents a fixed-length or dynamic sequence of one element type.
// Length is -1 for slices (unknown length).
type ArrayType struct {
	Elem   SemType
	Length int
}

func NewArray(elem SemType, length int) *ArrayType {
	return &ArrayType{Elem: elem, Length: length}
}

func NewSlice(elem SemType) *ArrayType {
	return &ArrayType{Elem: elem, Length: -1}
}

func (a *ArrayType) String() string {
	if a.Length < 0 {
		return fmt.Sprintf("[]%s", a.Elem.String())
	}
	return fmt.Sprintf("[%d]%s", a.Length, a.Elem.String())
}
func (a *ArrayType) isType() {}
func (a *ArrayType) Equals(other SemType) bool {
	if o, ok := other.(*ArrayType); ok {
		return a.Length == o.Length && a.Elem.Equals(o.Elem)
	}
	return false
}

// StructField is a named field inside a struct type.
type StructField struct {
	Name string
	Type SemType
}

// StructType represents a nominal aggregate with named fields.
type StructType struct {
	Name   string
	Fields []StructField
}

func NewStruct(name string, fields []StructField) *StructType {
	return &StructType{Name: name, Fields: fields}
}

func (s *StructType) String() string { return s.Name }
func (s *StructType) isType()        {}
func (s *StructType) Equals(other SemType) bool {
	o, ok := other.(*StructType)
	if !ok || s.Name != o.Name || len(s.Fields) != len(o.Fields) {
		return false
	}
	for i, f := range s.Fields {
		if f.Name != o.Fields[i].Name || !f.Type.Equals(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// EnumVariant is one alternative of an enum, with positional payload fields.
type EnumVariant struct {
	Name   string
	Fields []SemType
}

// EnumType represents a tagged union. Accessing a variant's payload fields
// requires first downcasting a place to that variant.
type EnumType struct {
	Name     string
	Variants []EnumVariant
}

func NewEnum(name string, variants []EnumVariant) *EnumType {
	return &EnumType{Name: name, Variants: variants}
}

func (e *EnumType) String() string { return e.Name }
func (e *EnumType) isType()        {}
func (e *EnumType) Equals(other SemType) bool {
	o, ok := other.(*EnumType)
	if !ok || e.Name != o.Name || len(e.Variants) != len(o.Variants) {
		return false
	}
	for i, v := range e.Variants {
		ov := o.Variants[i]
		if v.Name != ov.Name || len(v.Fields) != len(ov.Fields) {
			return false
		}
		for j, f := range v.Fields {
			if !f.Equals(ov.Fields[j]) {
				return false
			}
		}
	}
	return true
}

// Common singleton types
var (
	TypeI8     SemType
	TypeI16    SemType
	TypeI32    SemType
	TypeI64    SemType
	TypeU8     SemType
	TypeU16    SemType
	TypeU32    SemType
	TypeU64    SemType
	TypeF32    SemType
	TypeF64    SemType
	TypeString SemType
	TypeBool   SemType
	TypeVoid   SemType
)

func init() {
	TypeI8 = NewPrimitive(TYPE_I8)
	TypeI16 = NewPrimitive(TYPE_I16)
	TypeI32 = NewPrimitive(TYPE_I32)
	TypeI64 = NewPrimitive(TYPE_I64)
	TypeU8 = NewPrimitive(TYPE_U8)
	TypeU16 = NewPrimitive(TYPE_U16)
	TypeU32 = NewPrimitive(TYPE_U32)
	TypeU64 = NewPrimitive(TYPE_U64)
	TypeF32 = NewPrimitive(TYPE_F32)
	TypeF64 = NewPrimitive(TYPE_F64)
	TypeString = NewPrimitive(TYPE_STRING)
	TypeBool = NewPrimitive(TYPE_BOOL)
	TypeVoid = NewPrimitive(TYPE_VOID)
}
