// Package testutil synthesizes memory images containing SwissTable
// containers, so core and printer tests can run against byte-accurate
// layouts without a live target process.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probeops/swisskit/internal/cppname"
	"github.com/probeops/swisskit/pkg/memimage"
	"github.com/probeops/swisskit/pkg/types"
)

// ABI spellings used by every fixture.
const (
	Root    = "absl::"
	Version = "lts_20240116"
)

// Fixture addresses. The table object doubles as its CommonFields block
// (settings_ sits at offset zero).
const (
	imageBase = 0x1000
	imageSize = 0x10000

	mainAddr  = 0x1100
	tableAddr = 0x2000
	ctrlAddr  = 0x3000
	slotsAddr = 0x4000
	heapAddr  = 0x6000
)

// Container variants understood by BuildTable.
const (
	FlatSet = "flat_hash_set"
	NodeSet = "node_hash_set"
	FlatMap = "flat_hash_map"
	NodeMap = "node_hash_map"
)

// TableSpec describes the container image to synthesize. Keys and Vals are
// aligned with Ctrl by slot index; only entries whose control byte is
// non-negative are meaningful.
type TableSpec struct {
	Variant string
	Ctrl    []int8
	Keys    []int32
	Vals    []int32 // map variants only

	// SizeOverride forces the stored size field; when nil the size is the
	// count of non-negative control bytes.
	SizeOverride *uint64

	// NestedSizeTuple stores the size behind a nested compressed tuple's
	// value member instead of a plain field.
	NestedSizeTuple bool

	// StorageOuterOnly registers the settings storage type only under the
	// outer-only versioned spelling, forcing the accessor's fallback.
	StorageOuterOnly bool

	// SlotTypeGlobalOnly registers slot_type in the main-global scope
	// only, forcing the resolver's scoped retry.
	SlotTypeGlobalOnly bool

	// OmitMain leaves the entry symbol unregistered, so the scoped retry
	// cannot resolve a scope.
	OmitMain bool
}

// TableTypeName returns the runtime (version-qualified) type name the
// fixture registers for a variant.
func TableTypeName(variant string) string {
	args := "<int>"
	if variant == FlatMap || variant == NodeMap {
		args = "<int, int>"
	}
	return Root + Version + "::" + variant + args
}

// LiveCount returns how many control bytes mark an occupied slot.
func LiveCount(ctrl []int8) uint64 {
	var n uint64
	for _, c := range ctrl {
		if c >= 0 {
			n++
		}
	}
	return n
}

// BuildTable synthesizes an image holding one container variable named
// "tbl" laid out per spec, and returns the image and the table value.
func BuildTable(t *testing.T, spec TableSpec) (*memimage.Image, types.Value) {
	t.Helper()

	img := memimage.NewImage(imageBase, imageSize)

	intT := memimage.NewInt("int", 4)
	ctrlT := memimage.NewChar("signed char", 1)
	sizeT := memimage.NewUint("unsigned long", 8)
	byteT := memimage.NewUint("unsigned char", 1)
	ctrlPtrT := memimage.NewPointer(ctrlT)
	rawPtrT := memimage.NewPointer(byteT)
	for _, typ := range []*memimage.Type{intT, ctrlT, sizeT, byteT, ctrlPtrT, rawPtrT} {
		img.AddType(typ)
	}

	common := buildCommonFields(img, spec, ctrlPtrT, rawPtrT, sizeT)
	storage := registerStorage(t, img, spec, common)

	tableName := TableTypeName(spec.Variant)
	tableT := memimage.NewStruct(tableName, common.Size(),
		memimage.Field{Name: "settings_", Offset: 0, Type: storage})
	img.AddType(tableT)

	registerSlotType(t, img, spec, tableName, intT)

	if !spec.OmitMain {
		img.AddSymbol("main", "int", mainAddr)
	}

	writeTable(t, img, spec)
	img.AddSymbol("tbl", tableName, tableAddr)

	val, err := img.Variable("tbl")
	require.NoError(t, err)
	return img, val
}

func buildCommonFields(img *memimage.Image, spec TableSpec, ctrlPtrT, rawPtrT, sizeT *memimage.Type) *memimage.Type {
	name := Root + Version + "::container_internal::CommonFields"

	fields := []memimage.Field{{Name: "capacity_", Offset: 0, Type: sizeT}}
	if spec.NestedSizeTuple {
		tuple := memimage.NewStruct(
			Root+Version+"::container_internal::CompressedTuple<unsigned long>", 8,
			memimage.Field{Name: "value", Offset: 0, Type: sizeT})
		img.AddType(tuple)
		fields = append(fields, memimage.Field{Name: "compressed_tuple_", Offset: 8, Type: tuple})
	} else {
		fields = append(fields, memimage.Field{Name: "size_", Offset: 8, Type: sizeT})
	}
	fields = append(fields,
		memimage.Field{Name: "control_", Offset: 16, Type: ctrlPtrT},
		memimage.Field{Name: "slots_", Offset: 24, Type: rawPtrT},
	)

	common := memimage.NewStruct(name, 32, fields...)
	img.AddType(common)
	return common
}

// registerStorage registers the compressed-tuple storage wrapper under the
// spellings the accessor will try.
func registerStorage(t *testing.T, img *memimage.Image, spec TableSpec, common *memimage.Type) *memimage.Type {
	t.Helper()

	spelled := Root + "container_internal::internal_compressed_tuple::Storage<" +
		Root + "container_internal::CommonFields, 0, false>"
	primary, err := cppname.InsertVersion(spelled, Root, Version)
	require.NoError(t, err)
	fallback, err := cppname.InsertVersionOuter(spelled, Root, Version)
	require.NoError(t, err)

	name := primary
	if spec.StorageOuterOnly {
		name = fallback
	}
	storage := memimage.NewStruct(name, common.Size(),
		memimage.Field{Name: "value", Offset: 0, Type: common})
	img.AddType(storage)
	return storage
}

func registerSlotType(t *testing.T, img *memimage.Image, spec TableSpec, tableName string, intT *memimage.Type) {
	t.Helper()

	var target *memimage.Type
	switch spec.Variant {
	case FlatSet:
		target = intT
	case NodeSet:
		target = memimage.NewPointer(intT)
		img.AddType(target)
	case FlatMap:
		pair := pairType(img, intT)
		target = memimage.NewStruct(
			Root+Version+"::container_internal::map_slot_type<int, int>", 8,
			memimage.Field{Name: "key", Offset: 0, Type: intT},
			memimage.Field{Name: "value", Offset: 0, Type: pair})
		img.AddType(target)
	case NodeMap:
		pair := pairType(img, intT)
		target = memimage.NewPointer(pair)
		img.AddType(target)
	default:
		t.Fatalf("unknown table variant %q", spec.Variant)
	}

	alias := memimage.NewTypedef(tableName+"::slot_type", target)
	if spec.SlotTypeGlobalOnly {
		img.AddGlobalType(alias)
	} else {
		img.AddType(alias)
	}
}

func pairType(img *memimage.Image, intT *memimage.Type) *memimage.Type {
	pair := memimage.NewStruct("std::pair<int const, int>", 8,
		memimage.Field{Name: "first", Offset: 0, Type: intT},
		memimage.Field{Name: "second", Offset: 4, Type: intT})
	img.AddType(pair)
	return pair
}

// writeTable lays the container's bytes into the image: the common fields,
// the control array and the slot array, with node variants allocating their
// elements in a synthetic heap region.
func writeTable(t *testing.T, img *memimage.Image, spec TableSpec) {
	t.Helper()

	capacity := uint64(len(spec.Ctrl))
	size := LiveCount(spec.Ctrl)
	if spec.SizeOverride != nil {
		size = *spec.SizeOverride
	}

	require.NoError(t, img.WriteU64(tableAddr+0, capacity))
	require.NoError(t, img.WriteU64(tableAddr+8, size))
	require.NoError(t, img.WriteU64(tableAddr+16, ctrlAddr))
	require.NoError(t, img.WriteU64(tableAddr+24, slotsAddr))

	for i, c := range spec.Ctrl {
		require.NoError(t, img.WriteI8(ctrlAddr+uint64(i), c))
	}

	key := func(i int) int32 {
		if i < len(spec.Keys) {
			return spec.Keys[i]
		}
		return 0
	}
	val := func(i int) int32 {
		if i < len(spec.Vals) {
			return spec.Vals[i]
		}
		return 0
	}

	for i := range spec.Ctrl {
		idx := uint64(i)
		switch spec.Variant {
		case FlatSet:
			require.NoError(t, img.WriteU32(slotsAddr+idx*4, uint32(key(i))))
		case FlatMap:
			require.NoError(t, img.WriteU32(slotsAddr+idx*8, uint32(key(i))))
			require.NoError(t, img.WriteU32(slotsAddr+idx*8+4, uint32(val(i))))
		case NodeSet:
			elem := heapAddr + idx*8
			require.NoError(t, img.WriteU32(elem, uint32(key(i))))
			require.NoError(t, img.WriteU64(slotsAddr+idx*8, elem))
		case NodeMap:
			pair := heapAddr + idx*16
			require.NoError(t, img.WriteU32(pair, uint32(key(i))))
			require.NoError(t, img.WriteU32(pair+4, uint32(val(i))))
			require.NoError(t, img.WriteU64(slotsAddr+idx*8, pair))
		default:
			t.Fatalf("unknown table variant %q", spec.Variant)
		}
	}
}

// MustInsertVersion is a test helper around cppname.InsertVersion.
func MustInsertVersion(t *testing.T, name string) string {
	t.Helper()
	out, err := cppname.InsertVersion(name, Root, Version)
	require.NoError(t, err)
	return out
}

// Describe returns a short human label for a spec, useful in subtest names.
func (s TableSpec) Describe() string {
	return fmt.Sprintf("%s/cap=%d/live=%d", s.Variant, len(s.Ctrl), LiveCount(s.Ctrl))
}
