// Package types defines the public boundary of swisskit: the layout-oracle
// interfaces through which the inspector reads a target program's memory and
// type metadata, the printer surface consumed by display hosts, and the typed
// error taxonomy shared by every package in the module.
//
// Hosts (debugger plugins, core-dump tooling) implement Oracle/Scope/Type/Value
// against their own metadata source; everything else in swisskit is written
// purely in terms of these interfaces and never touches target memory directly.
package types
