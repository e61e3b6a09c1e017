package memimage

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/probeops/swisskit/pkg/types"
)

// cStringLimit bounds how far String follows a character pointer looking for
// a terminator, so a bad pointer cannot degenerate into scanning the image.
const cStringLimit = 256

// Value is a typed view of image memory. It implements types.Value.
type Value struct {
	img  *Image
	typ  *Type
	addr uint64
}

func (v *Value) Type() types.Type { return v.typ }

// Addr returns the value's address in the inspected image.
func (v *Value) Addr() uint64 { return v.addr }

// Field reads a named member of a struct value.
func (v *Value) Field(name string) (types.Value, error) {
	u := v.typ.strip()
	if u.kind != KindStruct {
		return nil, types.NewError(types.ErrKindFieldNotFound,
			fmt.Sprintf("type %s is not a struct, cannot read field %q", v.typ.name, name), nil)
	}
	f, ok := u.fieldByName(name)
	if !ok {
		return nil, types.NewError(types.ErrKindFieldNotFound,
			fmt.Sprintf("type %s has no field %q", u.name, name), nil)
	}
	return &Value{img: v.img, typ: f.Type, addr: v.addr + f.Offset}, nil
}

// Cast reinterprets the value's storage as t. The address is unchanged.
func (v *Value) Cast(t types.Type) (types.Value, error) {
	mt, ok := t.(*Type)
	if !ok {
		return nil, types.NewError(types.ErrKindFormat,
			"cannot cast to a type from a different oracle", nil)
	}
	return &Value{img: v.img, typ: mt, addr: v.addr}, nil
}

// Deref follows a pointer value to its pointee.
func (v *Value) Deref() (types.Value, error) {
	u := v.typ.strip()
	if u.kind != KindPointer {
		return nil, types.NewError(types.ErrKindFormat,
			"cannot dereference non-pointer type "+v.typ.name, nil)
	}
	target, err := v.pointee()
	if err != nil {
		return nil, err
	}
	return &Value{img: v.img, typ: u.elem, addr: target}, nil
}

// Index reads element i: array values index in place, pointer values apply
// pointer arithmetic to the pointee address.
func (v *Value) Index(i int64) (types.Value, error) {
	u := v.typ.strip()
	switch u.kind {
	case KindArray:
		if i < 0 || uint64(i) >= u.count {
			return nil, types.NewError(types.ErrKindFormat,
				fmt.Sprintf("index %d out of range for %s", i, u.name), nil)
		}
		return &Value{img: v.img, typ: u.elem, addr: v.addr + uint64(i)*u.elem.Size()}, nil
	case KindPointer:
		base, err := v.pointee()
		if err != nil {
			return nil, err
		}
		return &Value{img: v.img, typ: u.elem, addr: base + uint64(i)*u.elem.Size()}, nil
	default:
		return nil, types.NewError(types.ErrKindFormat,
			"cannot index non-array type "+v.typ.name, nil)
	}
}

// Int reads the value as a signed integer of its declared width.
func (v *Value) Int() (int64, error) {
	raw, err := v.scalar()
	if err != nil {
		return 0, err
	}
	width := v.typ.Size()
	// Sign-extend from the declared width.
	shift := uint(64 - width*8)
	return int64(raw<<shift) >> shift, nil
}

// Uint reads the value as an unsigned integer of its declared width.
func (v *Value) Uint() (uint64, error) {
	return v.scalar()
}

func (v *Value) scalar() (uint64, error) {
	size := v.typ.Size()
	if size == 0 || size > 8 {
		return 0, types.NewError(types.ErrKindFormat,
			fmt.Sprintf("type %s (size %d) is not a scalar", v.typ.name, size), nil)
	}
	b, err := v.img.read(v.addr, size)
	if err != nil {
		return 0, err
	}
	var raw uint64
	for i := int(size) - 1; i >= 0; i-- {
		raw = raw<<8 | uint64(b[i])
	}
	return raw, nil
}

func (v *Value) pointee() (uint64, error) {
	b, err := v.img.read(v.addr, PointerSize)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

// String renders the value for display. Read failures render inline as
// <error: ...> instead of propagating, so printing never aborts a session.
func (v *Value) String() string {
	u := v.typ.strip()
	switch u.kind {
	case KindInt:
		n, err := v.Int()
		if err != nil {
			return renderErr(err)
		}
		if u.char && u.size == 1 {
			return strconv.QuoteRune(rune(byte(n)))
		}
		return strconv.FormatInt(n, 10)
	case KindUint:
		n, err := v.Uint()
		if err != nil {
			return renderErr(err)
		}
		if u.char {
			return strconv.QuoteRune(rune(n))
		}
		return strconv.FormatUint(n, 10)
	case KindBool:
		n, err := v.Uint()
		if err != nil {
			return renderErr(err)
		}
		if n == 0 {
			return "false"
		}
		return "true"
	case KindPointer:
		target, err := v.pointee()
		if err != nil {
			return renderErr(err)
		}
		if u.elem != nil && u.elem.strip().char {
			if s, err := v.img.cString(target, u.elem.strip().size); err == nil {
				return fmt.Sprintf("0x%x %s", target, strconv.Quote(s))
			}
		}
		return fmt.Sprintf("0x%x", target)
	case KindArray:
		return v.renderArray(u)
	case KindStruct:
		return v.renderStruct(u)
	default:
		return renderErr(types.ErrFormat)
	}
}

func (v *Value) renderArray(u *Type) string {
	if u.elem.strip().char {
		raw, err := v.img.read(v.addr, u.size)
		if err != nil {
			return renderErr(err)
		}
		s, err := decodeChars(raw, u.elem.strip().size)
		if err != nil {
			return renderErr(err)
		}
		return strconv.Quote(strings.TrimRight(s, "\x00"))
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i := uint64(0); i < u.count; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		elem := &Value{img: v.img, typ: u.elem, addr: v.addr + i*u.elem.Size()}
		sb.WriteString(elem.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (v *Value) renderStruct(u *Type) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range u.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(" = ")
		fv := &Value{img: v.img, typ: f.Type, addr: v.addr + f.Offset}
		sb.WriteString(fv.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// cString reads a NUL-terminated character sequence of the given element
// width starting at addr.
func (img *Image) cString(addr, width uint64) (string, error) {
	var raw []byte
	for n := uint64(0); n < cStringLimit; n++ {
		b, err := img.read(addr+n*width, width)
		if err != nil {
			return "", err
		}
		zero := true
		for _, c := range b {
			if c != 0 {
				zero = false
				break
			}
		}
		if zero {
			break
		}
		raw = append(raw, b...)
	}
	return decodeChars(raw, width)
}

// decodeChars converts raw character data to UTF-8: single-byte text through
// the Windows-1252 table, two-byte text as UTF-16LE.
func decodeChars(raw []byte, width uint64) (string, error) {
	switch width {
	case 1:
		out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", types.NewError(types.ErrKindFormat, "decode single-byte text", err)
		}
		return string(out), nil
	case 2:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return "", types.NewError(types.ErrKindFormat, "decode UTF-16 text", err)
		}
		return string(out), nil
	default:
		return "", types.NewError(types.ErrKindFormat,
			fmt.Sprintf("unsupported character width %d", width), nil)
	}
}

func renderErr(err error) string {
	return "<error: " + err.Error() + ">"
}
