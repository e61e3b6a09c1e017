// Package swiss reconstructs the logical contents of SwissTable hash
// containers (flat/node hash map/set) from their raw in-memory layout,
// through a host-supplied layout oracle.
//
// The package knows three things about the layout: the container embeds its
// common fields behind a zero-index compressed-tuple wrapper; the common
// fields hold a capacity, a size, a control-byte array and a slot array; and
// a slot is occupied exactly when its control byte is non-negative when read
// as a signed 8-bit value. Everything else (field offsets, sizes, the
// inline ABI version namespace spelling) comes from the oracle at
// inspection time.
//
// All reads are snapshots of a frozen or externally synchronized image; the
// package never writes to inspected memory. The only persistent state is
// the Resolver's cached main-global scope handle, which is scoped to one
// inspection session: start a new Resolver for a new image.
package swiss
