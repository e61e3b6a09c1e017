package memimage

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/probeops/swisskit/pkg/types"
)

// Symbol is one named variable captured in the image.
type Symbol struct {
	Name     string
	TypeName string
	Addr     uint64
}

// Image is a captured memory region plus the type metadata needed to
// interpret it. It implements types.Oracle.
type Image struct {
	base uint64
	mem  []byte

	// Default lookup scope, and types visible only through the main
	// program's global scope. The split exists to reproduce oracles whose
	// innermost search misses inline-namespace types.
	types       map[string]*Type
	globalTypes map[string]*Type

	symbols map[string]Symbol
	order   []string // symbol names in registration order
}

// NewImage allocates a zeroed image of the given size at base.
func NewImage(base uint64, size int) *Image {
	return WrapImage(base, make([]byte, size))
}

// WrapImage builds an image around an existing memory buffer, e.g. a mapped
// capture file. The buffer is never written through.
func WrapImage(base uint64, mem []byte) *Image {
	return &Image{
		base:        base,
		mem:         mem,
		types:       make(map[string]*Type),
		globalTypes: make(map[string]*Type),
		symbols:     make(map[string]Symbol),
	}
}

func (img *Image) Base() uint64  { return img.base }
func (img *Image) Bytes() []byte { return img.mem }

// AddType registers a layout in the default lookup scope.
func (img *Image) AddType(t *Type) { img.types[t.name] = t }

// AddGlobalType registers a layout reachable only through the main global
// scope fallback.
func (img *Image) AddGlobalType(t *Type) { img.globalTypes[t.name] = t }

// AddSymbol registers a named variable of a previously registered type.
func (img *Image) AddSymbol(name, typeName string, addr uint64) {
	if _, exists := img.symbols[name]; !exists {
		img.order = append(img.order, name)
	}
	img.symbols[name] = Symbol{Name: name, TypeName: typeName, Addr: addr}
}

// Symbols returns the registered variables in registration order.
func (img *Image) Symbols() []Symbol {
	out := make([]Symbol, 0, len(img.order))
	for _, name := range img.order {
		out = append(out, img.symbols[name])
	}
	return out
}

// TypeNames returns every registered type name, default scope first, each
// scope sorted.
func (img *Image) TypeNames() []string {
	names := make([]string, 0, len(img.types)+len(img.globalTypes))
	for name := range img.types {
		names = append(names, name)
	}
	sort.Strings(names)
	globals := make([]string, 0, len(img.globalTypes))
	for name := range img.globalTypes {
		globals = append(globals, name)
	}
	sort.Strings(globals)
	return append(names, globals...)
}

// -----------------------------------------------------------------------------
// Raw memory access
// -----------------------------------------------------------------------------

func (img *Image) read(addr, n uint64) ([]byte, error) {
	if addr < img.base || addr+n > img.base+uint64(len(img.mem)) {
		return nil, types.NewError(types.ErrKindFormat,
			fmt.Sprintf("read of %d bytes at 0x%x outside image [0x%x, 0x%x)",
				n, addr, img.base, img.base+uint64(len(img.mem))), nil)
	}
	off := addr - img.base
	return img.mem[off : off+n], nil
}

// WriteBytes copies b into the image at addr. Used when synthesizing
// captures; inspection itself never writes.
func (img *Image) WriteBytes(addr uint64, b []byte) error {
	if addr < img.base || addr+uint64(len(b)) > img.base+uint64(len(img.mem)) {
		return types.NewError(types.ErrKindFormat,
			fmt.Sprintf("write of %d bytes at 0x%x outside image", len(b), addr), nil)
	}
	copy(img.mem[addr-img.base:], b)
	return nil
}

// WriteU64 stores a little-endian uint64 at addr.
func (img *Image) WriteU64(addr, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return img.WriteBytes(addr, b[:])
}

// WriteU32 stores a little-endian uint32 at addr.
func (img *Image) WriteU32(addr uint64, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return img.WriteBytes(addr, b[:])
}

// WriteU16 stores a little-endian uint16 at addr.
func (img *Image) WriteU16(addr uint64, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return img.WriteBytes(addr, b[:])
}

// WriteI8 stores a signed byte at addr.
func (img *Image) WriteI8(addr uint64, v int8) error {
	return img.WriteBytes(addr, []byte{byte(v)})
}

// -----------------------------------------------------------------------------
// types.Oracle implementation
// -----------------------------------------------------------------------------

type globalScope struct {
	img    *Image
	symbol string
}

func (s *globalScope) ScopeName() string { return "global scope of " + s.symbol }

// LookupType resolves a name in the default scope.
func (img *Image) LookupType(name string) (types.Type, error) {
	if t, ok := img.types[name]; ok {
		return t, nil
	}
	return nil, types.NewError(types.ErrKindTypeNotFound, "no type named "+name, nil)
}

// LookupTypeIn resolves a name through the given scope. The main global
// scope sees both the default-scope types and the global-only ones.
func (img *Image) LookupTypeIn(name string, scope types.Scope) (types.Type, error) {
	gs, ok := scope.(*globalScope)
	if !ok || gs.img != img {
		return nil, types.NewError(types.ErrKindFormat, "scope does not belong to this image", nil)
	}
	if t, ok := img.types[name]; ok {
		return t, nil
	}
	if t, ok := img.globalTypes[name]; ok {
		return t, nil
	}
	return nil, types.NewError(types.ErrKindTypeNotFound,
		"no type named "+name+" in "+gs.ScopeName(), nil)
}

// GlobalScope resolves the global scope anchored at a named symbol.
func (img *Image) GlobalScope(symbol string) (types.Scope, error) {
	if _, ok := img.symbols[symbol]; !ok {
		return nil, types.NewError(types.ErrKindSymbolNotFound, "no symbol named "+symbol, nil)
	}
	return &globalScope{img: img, symbol: symbol}, nil
}

// -----------------------------------------------------------------------------
// Value construction
// -----------------------------------------------------------------------------

// ValueAt views the memory at addr as the named type.
func (img *Image) ValueAt(typeName string, addr uint64) (types.Value, error) {
	t, ok := img.types[typeName]
	if !ok {
		t, ok = img.globalTypes[typeName]
	}
	if !ok {
		return nil, types.NewError(types.ErrKindTypeNotFound, "no type named "+typeName, nil)
	}
	return &Value{img: img, typ: t, addr: addr}, nil
}

// Variable returns the value of a registered symbol.
func (img *Image) Variable(name string) (types.Value, error) {
	sym, ok := img.symbols[name]
	if !ok {
		return nil, types.NewError(types.ErrKindSymbolNotFound, "no symbol named "+name, nil)
	}
	return img.ValueAt(sym.TypeName, sym.Addr)
}
