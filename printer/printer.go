// Package printer reconstructs SwissTable containers for display: four
// container printers (flat/node x set/map), a dispatch registry keyed on
// type-name prefixes, and text/JSON renderers for hosts without their own
// display surface.
package printer

import (
	"io"

	"github.com/probeops/swisskit/pkg/types"
)

const (
	DefaultIndentSize = 2
	DefaultMaxElems   = 0 // unlimited
)

// Format specifies the output format for rendering.
type Format string

const (
	// FormatText outputs human-readable text.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"
)

// Options controls rendering behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces children are indented by (text
	// format only).
	// Default: 2
	IndentSize int

	// MaxElems limits how many entries are rendered per container: slots
	// for sets, key/value pairs for maps. Zero renders everything.
	// Default: 0 (unlimited)
	MaxElems int
}

// DefaultOptions returns sensible defaults for rendering.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
		MaxElems:   DefaultMaxElems,
	}
}

// Renderer writes reconstructed containers to an output stream.
type Renderer struct {
	reg    *Registry
	writer io.Writer
	opts   Options
}

// NewRenderer creates a Renderer over a registry.
//
// Example:
//
//	reg, _ := printer.DefaultRegistry(res)
//	r := printer.NewRenderer(reg, os.Stdout, printer.DefaultOptions())
//	r.Render("live_sessions", val)
func NewRenderer(reg *Registry, w io.Writer, opts Options) *Renderer {
	return &Renderer{reg: reg, writer: w, opts: opts}
}

// Render writes one named value. Values without a matching printer render
// through their own String form; printer failures render inline as errors
// rather than aborting, since a bad value must not end the session.
func (r *Renderer) Render(name string, val types.Value) error {
	switch r.opts.Format {
	case FormatJSON:
		return r.renderJSON(name, val)
	default:
		return r.renderText(name, val)
	}
}
