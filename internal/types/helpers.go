package types

// Pointee returns the pointed-to type of a pointer type.
// The second return value is false if t is not a pointer.
func Pointee(t SemType) (SemType, bool) {
	if p, ok := t.(*PointerType); ok {
		return p.Elem, true
	}
	return nil, false
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t SemType) bool {
	_, ok := t.(*PointerType)
	return ok
}

// IsAggregate reports whether t has projectable fields or elements.
func IsAggregate(t SemType) bool {
	switch t.(type) {
	case *TupleType, *ArrayType, *StructType, *EnumType:
		return true
	default:
		return false
	}
}
