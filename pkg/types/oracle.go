package types

// -----------------------------------------------------------------------------
// Layout Oracle boundary
// -----------------------------------------------------------------------------

// Scope is an opaque handle to a symbol-table scope. The only scope swisskit
// ever asks for is the global scope of the inspected program's entry symbol,
// used as a fallback when the oracle's default search misses a type.
type Scope interface {
	// ScopeName identifies the scope for diagnostics only.
	ScopeName() string
}

// Type is a handle to a type as known to the oracle.
type Type interface {
	// Name returns the fully-qualified type name, including any inline
	// version namespace present in the debug metadata.
	Name() string

	// Size returns the storage size of the type in bytes.
	Size() uint64

	// StripAliases follows typedef/alias chains to the underlying type.
	// Non-alias types return themselves.
	StripAliases() Type

	// Pointer returns the pointer-to-this type.
	Pointer() Type
}

// Value is a handle to a typed region of inspected memory. All reads are
// snapshots; implementations must never mutate the target image.
type Value interface {
	// Type returns the declared type of the value.
	Type() Type

	// Field reads a named member of a structured value.
	Field(name string) (Value, error)

	// Cast reinterprets the value's storage as the given type. This is a
	// reinterpretation at the same address, not a conversion.
	Cast(t Type) (Value, error)

	// Deref follows a pointer-typed value to its pointee.
	Deref() (Value, error)

	// Index reads element i of an array-typed value, or performs pointer
	// arithmetic on a pointer-typed value.
	Index(i int64) (Value, error)

	// Int reads the value as a signed integer of its declared width.
	Int() (int64, error)

	// Uint reads the value as an unsigned integer of its declared width.
	Uint() (uint64, error)

	// String renders the value for display. Rendering failures are folded
	// into the returned text rather than reported, so String is always
	// safe to call on any value.
	String() string
}

// Oracle resolves types and symbols from the inspected program's metadata.
// Implementations wrap a debugger, a core file reader, or (in tests and the
// bundled CLI) a captured memory image with sidecar layout metadata.
type Oracle interface {
	// LookupType resolves a fully-qualified type name using the oracle's
	// default (innermost) search scope. Fails with ErrTypeNotFound.
	LookupType(name string) (Type, error)

	// LookupTypeIn resolves a type name within an explicit scope.
	// Fails with ErrTypeNotFound.
	LookupTypeIn(name string, scope Scope) (Type, error)

	// GlobalScope resolves the global scope containing the named symbol.
	// Fails with ErrSymbolNotFound.
	GlobalScope(symbol string) (Scope, error)
}
