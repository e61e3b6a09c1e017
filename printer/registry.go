package printer

import (
	"fmt"

	"github.com/probeops/swisskit/internal/cppname"
	"github.com/probeops/swisskit/pkg/types"
	"github.com/probeops/swisskit/swiss"
)

// Entry is one registered printer: either a templated-prefix match for a
// container, or an exact match for a non-templated auxiliary type.
type Entry struct {
	Name       string // short name, for listings and enable/disable surfaces
	Prefix     string // registered type-name prefix (or exact name)
	IsTemplate bool
	New        Constructor
}

// Registry dispatches values to printers by declared type name. Entries are
// evaluated in registration order and the first match wins; at most one
// printer ever applies to a given name.
//
// Template matching deliberately ignores member types of templated classes:
// "HashTable<T>" matches a registered "HashTable", "HashTable<T>::iterator"
// does not.
type Registry struct {
	res     *swiss.Resolver
	entries []Entry
}

// NewRegistry returns an empty registry bound to a resolver session.
func NewRegistry(res *swiss.Resolver) *Registry {
	return &Registry{res: res}
}

// Resolver returns the session resolver printers are constructed with.
func (r *Registry) Resolver() *swiss.Resolver { return r.res }

// Add registers a printer.
func (r *Registry) Add(name, prefix string, isTemplate bool, ctor Constructor) {
	r.entries = append(r.entries, Entry{Name: name, Prefix: prefix, IsTemplate: isTemplate, New: ctor})
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []Entry { return r.entries }

// Match returns the constructor registered for the given type name. A
// templated entry matches only a full instantiation: the bracket matching
// the first '<' must close the whole name and the text before it must equal
// the registered prefix, which rejects nested member types and
// longer-named siblings alike.
func (r *Registry) Match(typeName string) (Constructor, bool) {
	for _, e := range r.entries {
		if e.IsTemplate {
			if cppname.MatchesTemplatePrefix(typeName, e.Prefix) {
				return e.New, true
			}
		} else if typeName == e.Prefix {
			return e.New, true
		}
	}
	return nil, false
}

// For returns a printer for the value, or nil when no entry matches its
// stripped type name.
func (r *Registry) For(val types.Value) types.Printer {
	ctor, ok := r.Match(val.Type().StripAliases().Name())
	if !ok {
		return nil
	}
	return ctor(val, r.res)
}

// DefaultRegistry wires the four SwissTable container printers under their
// version-qualified prefixes for the resolver's configured ABI.
func DefaultRegistry(res *swiss.Resolver) (*Registry, error) {
	root := res.Config().RootNamespace

	reg := NewRegistry(res)
	containers := []struct {
		name string
		ctor Constructor
	}{
		{"node_hash_map", NewNodeMapPrinter},
		{"node_hash_set", NewNodeSetPrinter},
		{"flat_hash_map", NewFlatMapPrinter},
		{"flat_hash_set", NewFlatSetPrinter},
	}
	for _, c := range containers {
		prefix, err := res.QualifyOuter(root + c.name)
		if err != nil {
			return nil, fmt.Errorf("register %s printer: %w", c.name, err)
		}
		reg.Add(c.name, prefix, true, c.ctor)
	}
	return reg, nil
}
