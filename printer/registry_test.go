package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeops/swisskit/internal/testutil"
	"github.com/probeops/swisskit/printer"
	"github.com/probeops/swisskit/pkg/types"
	"github.com/probeops/swisskit/swiss"
)

func testResolver(t *testing.T) *swiss.Resolver {
	t.Helper()
	img, _ := testutil.BuildTable(t, testutil.TableSpec{Variant: testutil.FlatSet, Ctrl: []int8{0}})
	return swiss.NewResolver(img, swiss.Config{
		RootNamespace:   testutil.Root,
		InlineNamespace: testutil.Version,
	})
}

func TestRegistry_TemplateMatching(t *testing.T) {
	reg := printer.NewRegistry(testResolver(t))
	reg.Add("map", "lib::Map", true, printer.NewFlatMapPrinter)

	tests := []struct {
		name string
		want bool
	}{
		{"lib::Map<int,int>", true},
		{"lib::Map<int,int>::iterator", false},
		{"lib::MapExtra<int>", false},
		{"lib::Map<lib::Map<int,int>,int>", true},
		{"lib::Map", false},
	}
	for _, tt := range tests {
		_, ok := reg.Match(tt.name)
		assert.Equal(t, tt.want, ok, "type name %q", tt.name)
	}
}

func TestRegistry_ExactMatching(t *testing.T) {
	reg := printer.NewRegistry(testResolver(t))
	reg.Add("status", "lib::Status", false, printer.NewFlatSetPrinter)

	_, ok := reg.Match("lib::Status")
	require.True(t, ok)
	_, ok = reg.Match("lib::Status<int>")
	require.False(t, ok)
	_, ok = reg.Match("lib::StatusOr")
	require.False(t, ok)
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	reg := printer.NewRegistry(testResolver(t))
	first := func(val types.Value, res *swiss.Resolver) types.Printer {
		return printer.NewFlatSetPrinter(val, res)
	}
	second := func(val types.Value, res *swiss.Resolver) types.Printer {
		return printer.NewNodeSetPrinter(val, res)
	}
	reg.Add("a", "lib::T", true, first)
	reg.Add("b", "lib::T", true, second)

	ctor, ok := reg.Match("lib::T<int>")
	require.True(t, ok)

	_, val := testutil.BuildTable(t, testutil.TableSpec{Variant: testutil.FlatSet, Ctrl: []int8{0}})
	p := ctor(val, testResolver(t))
	_, isFlat := p.(*printer.FlatSetPrinter)
	require.True(t, isFlat, "registration order decides dispatch")
}

func TestDefaultRegistry_MatchesAllFourContainers(t *testing.T) {
	res := testResolver(t)
	reg, err := printer.DefaultRegistry(res)
	require.NoError(t, err)
	require.Len(t, reg.Entries(), 4)

	for _, variant := range []string{testutil.FlatSet, testutil.NodeSet, testutil.FlatMap, testutil.NodeMap} {
		_, ok := reg.Match(testutil.TableTypeName(variant))
		assert.True(t, ok, "variant %s", variant)

		// Member types of the container never dispatch to its printer.
		_, ok = reg.Match(testutil.TableTypeName(variant) + "::iterator")
		assert.False(t, ok, "iterator of %s", variant)
	}
}

func TestRegistry_ForReturnsNilWithoutMatch(t *testing.T) {
	img, val := testutil.BuildTable(t, testutil.TableSpec{Variant: testutil.FlatSet, Ctrl: []int8{0}})
	res := swiss.NewResolver(img, swiss.Config{
		RootNamespace:   testutil.Root,
		InlineNamespace: testutil.Version,
	})

	reg := printer.NewRegistry(res)
	require.Nil(t, reg.For(val))

	reg, err := printer.DefaultRegistry(res)
	require.NoError(t, err)
	require.NotNil(t, reg.For(val))
}
