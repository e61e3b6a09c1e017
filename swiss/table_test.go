package swiss_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probeops/swisskit/internal/testutil"
	"github.com/probeops/swisskit/pkg/types"
	"github.com/probeops/swisskit/swiss"
)

func TestTable_Settings(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    []int8{-128, 0, -1},
		Keys:    []int32{0, 42, 0},
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	settings, err := tbl.Settings()
	require.NoError(t, err)

	capacity, err := tbl.Capacity(settings)
	require.NoError(t, err)
	require.Equal(t, uint64(3), capacity)

	size, err := tbl.Size(settings)
	require.NoError(t, err)
	require.Equal(t, uint64(1), size)
}

// The primary storage spelling carries the version namespace inside the
// template argument. When the oracle only knows the outer-only spelling, the
// accessor falls back and the call still succeeds.
func TestTable_SettingsStorageFallback(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant:          testutil.FlatSet,
		Ctrl:             []int8{0, -1, -1},
		Keys:             []int32{7},
		StorageOuterOnly: true,
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	settings, err := tbl.Settings()
	require.NoError(t, err)

	size, err := tbl.Size(settings)
	require.NoError(t, err)
	require.Equal(t, uint64(1), size)
}

func TestTable_SizeNestedCompressedTuple(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant:         testutil.FlatSet,
		Ctrl:            []int8{0, 0, -1},
		Keys:            []int32{1, 2},
		NestedSizeTuple: true,
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	settings, err := tbl.Settings()
	require.NoError(t, err)

	size, err := tbl.Size(settings)
	require.NoError(t, err)
	require.Equal(t, uint64(2), size)
}

func TestTable_Len(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.FlatMap,
		Ctrl:    []int8{0, -1, 0, 5},
		Keys:    []int32{1, 0, 2, 3},
		Vals:    []int32{10, 0, 20, 30},
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	n, err := tbl.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)
}

func TestTable_WrongVersionNamespaceDiagnosable(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    []int8{0},
		Keys:    []int32{1},
	})
	// Misconfigured version string: every storage spelling misses.
	r := swiss.NewResolver(img, swiss.Config{
		RootNamespace:   testutil.Root,
		InlineNamespace: "lts_19990101",
	})
	tbl := swiss.NewTable(val, r)

	_, err := tbl.Settings()
	require.Error(t, err)
	require.Equal(t, types.ErrKindNameResolution, types.KindOf(err))
	require.ErrorIs(t, err, types.ErrTypeNotFound)
	require.Contains(t, err.Error(), "lts_19990101")
}
