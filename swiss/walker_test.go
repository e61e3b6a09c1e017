package swiss_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probeops/swisskit/internal/testutil"
	"github.com/probeops/swisskit/pkg/types"
	"github.com/probeops/swisskit/swiss"
)

// drain consumes an iterator to exhaustion, failing the test on any error
// other than the terminal io.EOF.
func drain(t *testing.T, it *swiss.SlotIterator) []types.Value {
	t.Helper()
	var out []types.Value
	for {
		v, err := it.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, v)
	}
}

func intOf(t *testing.T, v types.Value) int64 {
	t.Helper()
	n, err := v.Int()
	require.NoError(t, err)
	return n
}

// Capacity 7, control bytes [-1,-1,0,0,-1,0,-1]: the walker yields slots
// 2, 3 and 5, in that order.
func TestSlotIterator_ScanOrder(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    []int8{-1, -1, 0, 0, -1, 0, -1},
		Keys:    []int32{100, 101, 102, 103, 104, 105, 106},
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	it, err := tbl.Slots()
	require.NoError(t, err)

	elems := drain(t, it)
	require.Len(t, elems, 3)
	require.Equal(t, int64(102), intOf(t, elems[0]))
	require.Equal(t, int64(103), intOf(t, elems[1]))
	require.Equal(t, int64(105), intOf(t, elems[2]))
}

// Every non-negative control byte yields exactly one element and the total
// equals the stored size, for a mix of full, empty, deleted and sentinel
// markers.
func TestSlotIterator_YieldsExactlyLiveSlots(t *testing.T) {
	ctrl := []int8{5, -2, 0, -128, 127, -1, 33, 1, -2, -1, 64, -128, 0, 2, -1}
	keys := make([]int32, len(ctrl))
	for i := range keys {
		keys[i] = int32(1000 + i)
	}

	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    ctrl,
		Keys:    keys,
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	it, err := tbl.Slots()
	require.NoError(t, err)
	elems := drain(t, it)

	require.Equal(t, testutil.LiveCount(ctrl), uint64(len(elems)))

	var want []int64
	for i, c := range ctrl {
		if c >= 0 {
			want = append(want, int64(1000+i))
		}
	}
	got := make([]int64, 0, len(elems))
	for _, e := range elems {
		got = append(got, intOf(t, e))
	}
	require.Equal(t, want, got, "elements must come from live slots in ascending order")
}

func TestSlotIterator_EmptyTable(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    nil, // capacity 0
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	it, err := tbl.Slots()
	require.NoError(t, err)

	_, err = it.Next()
	require.ErrorIs(t, err, io.EOF)
}

// A reported size of zero short-circuits before the control array is read,
// regardless of what the control bytes claim.
func TestSlotIterator_SizeZeroShortCircuits(t *testing.T) {
	zero := uint64(0)
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant:      testutil.FlatSet,
		Ctrl:         []int8{0, 0, 0}, // all claim occupancy
		Keys:         []int32{1, 2, 3},
		SizeOverride: &zero,
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	it, err := tbl.Slots()
	require.NoError(t, err)

	_, err = it.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestSlotIterator_NotRestartable(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    []int8{0},
		Keys:    []int32{9},
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	it, err := tbl.Slots()
	require.NoError(t, err)
	require.Len(t, drain(t, it), 1)

	// Exhausted stays exhausted.
	_, err = it.Next()
	require.ErrorIs(t, err, io.EOF)
	_, err = it.Next()
	require.ErrorIs(t, err, io.EOF)
}

// Node-backed slots hold owning pointers; the walker yields the pointer and
// leaves dereferencing to the printers.
func TestSlotIterator_NodeSlotsArePointers(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant: testutil.NodeSet,
		Ctrl:    []int8{-1, 0, 0},
		Keys:    []int32{0, 21, 22},
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	it, err := tbl.Slots()
	require.NoError(t, err)
	elems := drain(t, it)
	require.Len(t, elems, 2)

	first, err := elems[0].Deref()
	require.NoError(t, err)
	require.Equal(t, int64(21), intOf(t, first))

	second, err := elems[1].Deref()
	require.NoError(t, err)
	require.Equal(t, int64(22), intOf(t, second))
}

// slot_type may only be visible through the main-global scope; the walker
// still resolves it via the resolver's scoped retry.
func TestSlotIterator_SlotTypeThroughGlobalScope(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant:            testutil.FlatSet,
		Ctrl:               []int8{0, -1},
		Keys:               []int32{11},
		SlotTypeGlobalOnly: true,
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	it, err := tbl.Slots()
	require.NoError(t, err)
	elems := drain(t, it)
	require.Len(t, elems, 1)
	require.Equal(t, int64(11), intOf(t, elems[0]))
}

func TestSlotIterator_SlotTypeUnresolvable(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{
		Variant:            testutil.FlatSet,
		Ctrl:               []int8{0},
		Keys:               []int32{1},
		SlotTypeGlobalOnly: true,
		OmitMain:           true,
	})
	tbl := swiss.NewTable(val, swiss.NewResolver(img, testConfig()))

	_, err := tbl.Slots()
	require.Error(t, err)
	require.Equal(t, types.ErrKindNameResolution, types.KindOf(err))
}
