package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindMalformedName  ErrKind = iota // input name lacks the root namespace token
	ErrKindNameResolution                // both lookup scopes failed for a type name
	ErrKindTypeNotFound                  // oracle has no type under the given name
	ErrKindFieldNotFound                 // structured value has no such field
	ErrKindSymbolNotFound                // oracle has no symbol under the given name
	ErrKindFormat                        // value cannot be read or rendered
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality, so errors.Is(err, ErrTypeNotFound) matches any
// Error of that kind regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrMalformedName indicates the resolver input lacks the root namespace
	// token. This is a caller bug, not an ABI mismatch, and is surfaced
	// before any oracle lookup is attempted.
	ErrMalformedName = &Error{Kind: ErrKindMalformedName, Msg: "malformed type name (missing root namespace)"}
	// ErrNameResolution indicates both the default and the main-global
	// lookup scopes failed. The usual cause is a misconfigured inline
	// version namespace string.
	ErrNameResolution = &Error{Kind: ErrKindNameResolution, Msg: "type name resolution failed in all scopes"}
	// ErrTypeNotFound indicates the oracle knows no type under the name.
	ErrTypeNotFound = &Error{Kind: ErrKindTypeNotFound, Msg: "type not found"}
	// ErrFieldNotFound indicates a structured value has no such member.
	ErrFieldNotFound = &Error{Kind: ErrKindFieldNotFound, Msg: "field not found"}
	// ErrSymbolNotFound indicates the oracle knows no symbol under the name.
	ErrSymbolNotFound = &Error{Kind: ErrKindSymbolNotFound, Msg: "symbol not found"}
	// ErrFormat indicates a value could not be read or rendered.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "value cannot be formatted"}
)

// NewError wraps cause in an Error of the given kind with a message.
func NewError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf extracts the ErrKind from err, or -1 if err carries no *Error.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return -1
}
