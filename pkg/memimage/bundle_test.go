package memimage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildBundleImage(t *testing.T) *Image {
	t.Helper()

	img := NewImage(0x1000, 0x200)
	intT := NewInt("int", 4)
	charT := NewChar("char", 1)
	ptrT := NewPointer(intT)
	alias := NewTypedef("id_t", intT)
	arr := NewArray(charT, 4)
	point := NewStruct("Point", 8,
		Field{Name: "x", Offset: 0, Type: intT},
		Field{Name: "y", Offset: 4, Type: intT})
	hidden := NewUint("hidden", 8)

	for _, typ := range []*Type{intT, charT, ptrT, alias, arr, point} {
		img.AddType(typ)
	}
	img.AddGlobalType(hidden)

	require.NoError(t, img.WriteU32(0x1010, 7))
	require.NoError(t, img.WriteU32(0x1014, 9))
	img.AddSymbol("origin", "Point", 0x1010)
	img.AddSymbol("main", "int", 0x1000)
	return img
}

func TestBundle_RoundTrip(t *testing.T) {
	img := buildBundleImage(t)

	dir := t.TempDir()
	metaPath := filepath.Join(dir, "capture.json")
	require.NoError(t, WriteBundle(img, metaPath, "capture.bin"))

	b, err := LoadBundle(metaPath)
	require.NoError(t, err)
	defer b.Close()

	require.Equal(t, img.Base(), b.Image.Base())
	require.Equal(t, img.Bytes(), b.Image.Bytes())

	// Symbols survive with order.
	syms := b.Image.Symbols()
	require.Len(t, syms, 2)
	require.Equal(t, "origin", syms[0].Name)

	// Struct layout and scoping survive.
	v, err := b.Image.Variable("origin")
	require.NoError(t, err)
	y, err := v.Field("y")
	require.NoError(t, err)
	n, err := y.Int()
	require.NoError(t, err)
	require.Equal(t, int64(9), n)

	_, err = b.Image.LookupType("hidden")
	require.Error(t, err)
	scope, err := b.Image.GlobalScope("main")
	require.NoError(t, err)
	typ, err := b.Image.LookupTypeIn("hidden", scope)
	require.NoError(t, err)
	require.Equal(t, uint64(8), typ.Size())

	// Aliases still strip.
	aliased, err := b.Image.LookupType("id_t")
	require.NoError(t, err)
	require.Equal(t, "int", aliased.StripAliases().Name())
}

func TestLoadBundle_MissingMemoryFile(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "capture.json")
	require.NoError(t, os.WriteFile(metaPath,
		[]byte(`{"base": 4096, "memory": "gone.bin", "types": [], "variables": []}`), 0o644))

	_, err := LoadBundle(metaPath)
	require.Error(t, err)
}

func TestLoadBundle_RejectsDanglingTypeRef(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mem.bin"), []byte{0}, 0o644))
	meta := `{
  "base": 4096,
  "memory": "mem.bin",
  "types": [{"name": "int *", "kind": "pointer", "elem": "int"}],
  "variables": []
}`
	metaPath := filepath.Join(dir, "capture.json")
	require.NoError(t, os.WriteFile(metaPath, []byte(meta), 0o644))

	_, err := LoadBundle(metaPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown type")
}
