package memimage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/probeops/swisskit/pkg/types"
)

// A capture bundle is a JSON metadata file next to a raw memory dump. The
// metadata describes type layouts and captured variables; the dump holds the
// bytes. Bundles are how offline tooling hands an inspection session to
// swissctl and swissexplorer.

type bundleMeta struct {
	Base      uint64     `json:"base"`
	Memory    string     `json:"memory"` // dump path, relative to the metadata file
	Types     []typeSpec `json:"types"`
	Variables []varSpec  `json:"variables"`
}

type typeSpec struct {
	Name   string      `json:"name"`
	Kind   string      `json:"kind"` // struct, int, uint, bool, char, pointer, array, typedef
	Size   uint64      `json:"size,omitempty"`
	Elem   string      `json:"elem,omitempty"`
	Count  uint64      `json:"count,omitempty"`
	Fields []fieldSpec `json:"fields,omitempty"`
	Scope  string      `json:"scope,omitempty"` // "" = default scope, "global" = main-global only
}

type fieldSpec struct {
	Name   string `json:"name"`
	Offset uint64 `json:"offset"`
	Type   string `json:"type"`
}

type varSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Addr uint64 `json:"addr"`
}

// Bundle is a loaded capture bundle. Close releases the memory mapping.
type Bundle struct {
	Image *Image
	Path  string

	unmap func() error
}

// Close releases the underlying memory mapping, if any.
func (b *Bundle) Close() error {
	if b.unmap == nil {
		return nil
	}
	f := b.unmap
	b.unmap = nil
	return f()
}

// LoadBundle reads a bundle's metadata and maps its memory dump.
func LoadBundle(metaPath string) (*Bundle, error) {
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("read bundle metadata: %w", err)
	}

	var meta bundleMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, types.NewError(types.ErrKindFormat, "parse bundle metadata", err)
	}
	if meta.Memory == "" {
		return nil, types.NewError(types.ErrKindFormat, "bundle metadata names no memory file", nil)
	}

	memPath := meta.Memory
	if !filepath.IsAbs(memPath) {
		memPath = filepath.Join(filepath.Dir(metaPath), memPath)
	}
	mem, unmap, err := mapFile(memPath)
	if err != nil {
		return nil, fmt.Errorf("map memory dump %s: %w", memPath, err)
	}

	img := WrapImage(meta.Base, mem)
	if err := installTypes(img, meta.Types); err != nil {
		_ = unmap()
		return nil, err
	}
	for _, v := range meta.Variables {
		img.AddSymbol(v.Name, v.Type, v.Addr)
	}

	return &Bundle{Image: img, Path: metaPath, unmap: unmap}, nil
}

// installTypes materializes the type graph in two passes so specs can refer
// to each other by name in any order.
func installTypes(img *Image, specs []typeSpec) error {
	byName := make(map[string]*Type, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return types.NewError(types.ErrKindFormat, "bundle type with empty name", nil)
		}
		if _, dup := byName[s.Name]; dup {
			return types.NewError(types.ErrKindFormat, "duplicate bundle type "+s.Name, nil)
		}
		byName[s.Name] = &Type{name: s.Name}
	}

	resolve := func(owner, name string) (*Type, error) {
		if t, ok := byName[name]; ok {
			return t, nil
		}
		return nil, types.NewError(types.ErrKindFormat,
			fmt.Sprintf("bundle type %s references unknown type %s", owner, name), nil)
	}

	for _, s := range specs {
		t := byName[s.Name]
		switch s.Kind {
		case "struct":
			t.kind = KindStruct
			t.size = s.Size
			for _, f := range s.Fields {
				ft, err := resolve(s.Name, f.Type)
				if err != nil {
					return err
				}
				t.fields = append(t.fields, Field{Name: f.Name, Offset: f.Offset, Type: ft})
			}
		case "int":
			t.kind, t.size = KindInt, s.Size
		case "uint":
			t.kind, t.size = KindUint, s.Size
		case "bool":
			t.kind, t.size = KindBool, 1
		case "char":
			t.kind, t.size, t.char = KindInt, s.Size, true
		case "pointer":
			elem, err := resolve(s.Name, s.Elem)
			if err != nil {
				return err
			}
			t.kind, t.size, t.elem = KindPointer, PointerSize, elem
		case "array":
			elem, err := resolve(s.Name, s.Elem)
			if err != nil {
				return err
			}
			t.kind, t.elem, t.count = KindArray, elem, s.Count
			t.size = elem.Size() * s.Count
		case "typedef":
			elem, err := resolve(s.Name, s.Elem)
			if err != nil {
				return err
			}
			t.kind, t.elem = KindTypedef, elem
		default:
			return types.NewError(types.ErrKindFormat,
				fmt.Sprintf("bundle type %s has unknown kind %q", s.Name, s.Kind), nil)
		}
	}

	for _, s := range specs {
		if s.Scope == "global" {
			img.AddGlobalType(byName[s.Name])
		} else {
			img.AddType(byName[s.Name])
		}
	}
	return nil
}

// WriteBundle serializes an image and its memory to a metadata file and dump
// file. memName is the dump filename recorded in (and written next to) the
// metadata.
func WriteBundle(img *Image, metaPath, memName string) error {
	meta := bundleMeta{
		Base:   img.base,
		Memory: memName,
	}

	appendSpec := func(t *Type, scope string) {
		s := typeSpec{Name: t.name, Scope: scope}
		switch t.kind {
		case KindStruct:
			s.Kind, s.Size = "struct", t.size
			for _, f := range t.fields {
				s.Fields = append(s.Fields, fieldSpec{Name: f.Name, Offset: f.Offset, Type: f.Type.name})
			}
		case KindInt:
			if t.char {
				s.Kind, s.Size = "char", t.size
			} else {
				s.Kind, s.Size = "int", t.size
			}
		case KindUint:
			s.Kind, s.Size = "uint", t.size
		case KindBool:
			s.Kind = "bool"
		case KindPointer:
			s.Kind, s.Elem = "pointer", t.elem.name
		case KindArray:
			s.Kind, s.Elem, s.Count = "array", t.elem.name, t.count
		case KindTypedef:
			s.Kind, s.Elem = "typedef", t.elem.name
		}
		meta.Types = append(meta.Types, s)
	}

	names := make([]string, 0, len(img.types))
	for name := range img.types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		appendSpec(img.types[name], "")
	}

	names = names[:0]
	for name := range img.globalTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		appendSpec(img.globalTypes[name], "global")
	}

	for _, sym := range img.Symbols() {
		meta.Variables = append(meta.Variables, varSpec{Name: sym.Name, Type: sym.TypeName, Addr: sym.Addr})
	}

	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bundle metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, raw, 0o644); err != nil {
		return fmt.Errorf("write bundle metadata: %w", err)
	}
	memPath := filepath.Join(filepath.Dir(metaPath), memName)
	if err := os.WriteFile(memPath, img.mem, 0o644); err != nil {
		return fmt.Errorf("write memory dump: %w", err)
	}
	return nil
}
