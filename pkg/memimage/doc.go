// Package memimage is a layout oracle backed by a captured memory image plus
// sidecar type metadata. It implements the pkg/types Oracle/Type/Value
// boundary over a flat byte buffer, which makes it both the reference host
// for the swissctl/swissexplorer tools and the test double for the core
// packages.
//
// An image pairs a base address and raw bytes with a registry of type
// layouts (structs with field offsets, scalars, pointers, arrays, aliases)
// and named variables. Types can be registered in the default lookup scope
// or in the "main global" scope only, mirroring debuggers whose innermost
// search misses some inline-namespace types.
//
// Images can be built programmatically or loaded from a capture bundle: a
// JSON metadata file alongside a raw memory dump, mmapped read-only where
// the platform allows.
package memimage
