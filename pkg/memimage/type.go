package memimage

import "github.com/probeops/swisskit/pkg/types"

// PointerSize is the pointer width of inspected images. Only 64-bit little
// endian captures are supported.
const PointerSize = 8

// Kind discriminates the layout categories an image can describe.
type Kind int

const (
	KindStruct Kind = iota
	KindInt
	KindUint
	KindBool
	KindPointer
	KindArray
	KindTypedef
)

// Field is one named member of a struct layout.
type Field struct {
	Name   string
	Offset uint64
	Type   *Type
}

// Type describes one layout known to the image. It implements types.Type.
type Type struct {
	name   string
	kind   Kind
	size   uint64
	char   bool // scalar holds character data; drives string rendering
	fields []Field
	elem   *Type  // pointer/array/typedef target
	count  uint64 // array length
}

// NewStruct returns a struct layout of the given total size.
func NewStruct(name string, size uint64, fields ...Field) *Type {
	return &Type{name: name, kind: KindStruct, size: size, fields: fields}
}

// NewInt returns a signed integer layout of the given byte width.
func NewInt(name string, size uint64) *Type {
	return &Type{name: name, kind: KindInt, size: size}
}

// NewUint returns an unsigned integer layout of the given byte width.
func NewUint(name string, size uint64) *Type {
	return &Type{name: name, kind: KindUint, size: size}
}

// NewBool returns a one-byte boolean layout.
func NewBool(name string) *Type {
	return &Type{name: name, kind: KindBool, size: 1}
}

// NewChar returns a character layout: width 1 renders as single-byte text,
// width 2 as UTF-16.
func NewChar(name string, size uint64) *Type {
	return &Type{name: name, kind: KindInt, size: size, char: true}
}

// NewPointer returns a pointer-to-elem layout.
func NewPointer(elem *Type) *Type {
	return &Type{name: elem.name + " *", kind: KindPointer, size: PointerSize, elem: elem}
}

// NewArray returns an array layout of count elements.
func NewArray(elem *Type, count uint64) *Type {
	return &Type{name: elem.name + " []", kind: KindArray, size: elem.Size() * count, elem: elem, count: count}
}

// NewTypedef returns an alias for target under a new name.
func NewTypedef(name string, target *Type) *Type {
	return &Type{name: name, kind: KindTypedef, elem: target}
}

func (t *Type) Name() string { return t.name }

// Size returns the byte size; aliases report their target's size.
func (t *Type) Size() uint64 {
	if t.kind == KindTypedef {
		return t.elem.Size()
	}
	return t.size
}

// StripAliases follows typedef chains to the underlying layout.
func (t *Type) StripAliases() types.Type { return t.strip() }

func (t *Type) strip() *Type {
	u := t
	for u.kind == KindTypedef {
		u = u.elem
	}
	return u
}

// Pointer returns the pointer-to-this layout.
func (t *Type) Pointer() types.Type { return NewPointer(t) }

// Kind returns the layout category after alias stripping.
func (t *Type) Kind() Kind { return t.strip().kind }

// Elem returns the pointee/element/alias target, or nil for scalars and
// structs.
func (t *Type) Elem() *Type { return t.elem }

func (t *Type) fieldByName(name string) (Field, bool) {
	u := t.strip()
	for _, f := range u.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
