package types

// -----------------------------------------------------------------------------
// Printer surface consumed by display hosts
// -----------------------------------------------------------------------------

// DisplayHint tells the host how to lay out a printer's children.
type DisplayHint string

const (
	// HintArray marks flat, indexable children with no implied pairing.
	HintArray DisplayHint = "array"

	// HintMap marks children emitted as alternating key/value pairs.
	HintMap DisplayHint = "map"

	// HintNone leaves layout to the host.
	HintNone DisplayHint = ""
)

// Child is one labelled element produced by a printer.
type Child struct {
	Label string
	Value Value
}

// ChildIterator is a lazy, finite, non-restartable child sequence. Next
// returns io.EOF once the sequence is exhausted. Iterators hold no internal
// synchronization and must be consumed by a single caller.
type ChildIterator interface {
	Next() (Child, error)
}

// Printer reconstructs one container value for display.
type Printer interface {
	// Summary returns the one-line description of the container.
	Summary() (string, error)

	// Children returns a fresh lazy sequence over the container's
	// elements. Errors during enumeration are reported by Next.
	Children() ChildIterator

	// DisplayHint reports the child layout shape.
	DisplayHint() DisplayHint
}
