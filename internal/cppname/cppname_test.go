package cppname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeops/swisskit/pkg/types"
)

func TestMatchBrackets(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Foo<T>::iterator<U>", 5},
		{"Foo<T>", 5},
		{"Foo<Bar<T>, Baz<U>>", 18},
		{"Foo", -1},
		{"Foo<Bar<T>", -1}, // unbalanced
		{"<T>", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchBrackets(tt.in), "input %q", tt.in)
	}
}

func TestSplitTemplateArgs(t *testing.T) {
	parts := SplitTemplateArgs("int, std::pair<int, long>, false")
	require.Equal(t, []string{"int", " std::pair<int, long>", " false"}, parts)
}

func TestSplitTemplateArgs_SingleArg(t *testing.T) {
	parts := SplitTemplateArgs("std::vector<int>")
	require.Equal(t, []string{"std::vector<int>"}, parts)
}

func TestInsertVersionOuter(t *testing.T) {
	got, err := InsertVersionOuter("absl::flat_hash_map", "absl::", "lts_20240116")
	require.NoError(t, err)
	require.Equal(t, "absl::lts_20240116::flat_hash_map", got)
}

func TestInsertVersionOuter_LeavesNestedArgs(t *testing.T) {
	got, err := InsertVersionOuter(
		"absl::container_internal::Storage<absl::container_internal::CommonFields, 0, false>",
		"absl::", "v1")
	require.NoError(t, err)
	require.Equal(t,
		"absl::v1::container_internal::Storage<absl::container_internal::CommonFields, 0, false>",
		got)
}

func TestInsertVersion_Simple(t *testing.T) {
	got, err := InsertVersion("lib::node_hash_map<K,V>", "lib::", "v1")
	require.NoError(t, err)
	require.Equal(t, "lib::v1::node_hash_map<K,V>", got)
}

func TestInsertVersion_RequalifiesNestedArgs(t *testing.T) {
	got, err := InsertVersion("lib::node_hash_map<lib::Pair<K,V>,V>", "lib::", "v1")
	require.NoError(t, err)
	require.Equal(t, "lib::v1::node_hash_map<lib::v1::Pair<K,V>,V>", got)
}

func TestInsertVersion_BareArgumentList(t *testing.T) {
	got, err := InsertVersion("<absl::container_internal::CommonFields, 0, false>", "absl::", "v1")
	require.NoError(t, err)
	require.Equal(t, "<absl::v1::container_internal::CommonFields, 0, false>", got)
}

func TestInsertVersion_MissingRootToken(t *testing.T) {
	_, err := InsertVersion("std::vector<int>", "absl::", "v1")
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrMalformedName)

	_, err = InsertVersionOuter("std::vector<int>", "absl::", "v1")
	require.ErrorIs(t, err, types.ErrMalformedName)
}

// Inserting then stripping the version token recovers the original spelling,
// for names carrying the root token in both outer and nested positions.
func TestInsertVersion_StripRoundTrip(t *testing.T) {
	inputs := []string{
		"lib::Map<int,int>",
		"lib::node_hash_map<lib::Pair<K,V>,V>",
		"lib::Set<lib::Inner<lib::Deep<T>>, std::allocator<lib::Deep<T>>>",
		"lib::Plain",
	}
	for _, in := range inputs {
		got, err := InsertVersion(in, "lib::", "v1")
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, StripVersion(got, "v1"), "round trip for %q", in)
	}
}

func TestMatchesTemplatePrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   bool
	}{
		{"lib::Map<int,int>", "lib::Map", true},
		{"lib::Map<int,int>::iterator", "lib::Map", false},
		{"lib::MapExtra<int>", "lib::Map", false},
		{"lib::Map<lib::Map<int,int>,int>", "lib::Map", true},
		{"lib::Map", "lib::Map", false}, // not an instantiation
		{"lib::Map<int,int>", "lib::Set", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesTemplatePrefix(tt.name, tt.prefix),
			"name %q prefix %q", tt.name, tt.prefix)
	}
}
