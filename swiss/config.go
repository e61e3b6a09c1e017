package swiss

const (
	// DefaultRootNamespace is the container library's root namespace token,
	// including the trailing separator.
	DefaultRootNamespace = "absl::"

	// DefaultInlineNamespace is the inline ABI version namespace the
	// library's debug metadata carries. It must match the build of the
	// library under inspection; a mismatch surfaces as a name-resolution
	// failure on first container access.
	DefaultInlineNamespace = "lts_20240116"

	// DefaultEntrySymbol anchors the fallback lookup scope.
	DefaultEntrySymbol = "main"
)

// Config carries the ABI spellings for one inspection session.
type Config struct {
	// RootNamespace is the root namespace token, e.g. "absl::".
	RootNamespace string

	// InlineNamespace is the inline version namespace identifier,
	// e.g. "lts_20240116".
	InlineNamespace string

	// EntrySymbol names the symbol whose global scope is used as the
	// fallback lookup scope, normally "main".
	EntrySymbol string
}

// DefaultConfig returns the spellings for a stock Abseil LTS build.
func DefaultConfig() Config {
	return Config{
		RootNamespace:   DefaultRootNamespace,
		InlineNamespace: DefaultInlineNamespace,
		EntrySymbol:     DefaultEntrySymbol,
	}
}

func (c Config) withDefaults() Config {
	if c.RootNamespace == "" {
		c.RootNamespace = DefaultRootNamespace
	}
	if c.InlineNamespace == "" {
		c.InlineNamespace = DefaultInlineNamespace
	}
	if c.EntrySymbol == "" {
		c.EntrySymbol = DefaultEntrySymbol
	}
	return c
}
