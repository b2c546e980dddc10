package diagnostics

// Error codes for the Tern IR core
const (
	// Internal invariant violations (I prefix). These are never user
	// errors: each one means an earlier stage handed us malformed IR.
	ErrPlaceTypeMismatch    = "I0001" // projection applied to an incompatible base type
	ErrDerefOfNonPointer    = "I0002" // Deref projection over a non-pointer type
	ErrTrackerUnresolved    = "I0003" // deref-temp local with no recorded origin
	ErrTrackerRewrite       = "I0004" // second origin recorded for the same temp
	ErrEmbeddedDerefRemains = "I0005" // Deref at index >= 1 after normalization
	ErrBadLocal             = "I0006" // local id out of range for the body
	ErrBadProjection        = "I0007" // malformed projection element
)
