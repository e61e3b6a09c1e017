package main

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/probeops/swisskit/cmd/swissexplorer/logger"
	"github.com/probeops/swisskit/pkg/memimage"
	"github.com/probeops/swisskit/printer"
	"github.com/probeops/swisskit/swiss"
)

// Pane represents which pane is focused
type Pane int

const (
	VariablePane Pane = iota
	DetailPane
)

// Layout constants
const (
	headerHeight   = 2 // Title row plus its margin
	statusHeight   = 1 // Key hints at the bottom
	minListWidth   = 24
	maxRenderElems = 500 // Elements rendered per container before truncating
	chromeWidth    = 4   // Borders and padding around each pane
)

// Model is the main application model
type Model struct {
	bundlePath string
	bundle     *memimage.Bundle
	reg        *printer.Registry

	vars      []memimage.Symbol
	container []bool // vars[i] dispatches to a container printer
	cursor    int

	focusedPane Pane
	width       int
	height      int
	ready       bool

	detail viewport.Model
	keys   KeyMap

	showHelp bool
}

// NewModel builds the explorer over a loaded bundle.
func NewModel(b *memimage.Bundle, path string, cfg swiss.Config) (Model, error) {
	res := swiss.NewResolver(b.Image, cfg)
	reg, err := printer.DefaultRegistry(res)
	if err != nil {
		return Model{}, fmt.Errorf("failed to build printer registry: %w", err)
	}

	vars := b.Image.Symbols()
	container := make([]bool, len(vars))
	for i, sym := range vars {
		_, container[i] = reg.Match(sym.TypeName)
	}

	m := Model{
		bundlePath: path,
		bundle:     b,
		reg:        reg,
		vars:       vars,
		container:  container,
		keys:       DefaultKeyMap(),
	}
	logger.Debug("model built", "variables", len(vars))
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// renderSelected reconstructs the variable under the cursor into the text the
// detail pane shows.
func (m *Model) renderSelected() string {
	if len(m.vars) == 0 {
		return "No variables in this bundle."
	}
	sym := m.vars[m.cursor]

	val, err := m.bundle.Image.Variable(sym.Name)
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s @ 0x%x\n%s\n\n", sym.Name, sym.Addr, sym.TypeName)

	opts := printer.DefaultOptions()
	opts.MaxElems = maxRenderElems
	r := printer.NewRenderer(m.reg, &buf, opts)
	if err := r.Render(sym.Name, val); err != nil {
		fmt.Fprintf(&buf, "<error: %v>\n", err)
	}
	return buf.String()
}

// refreshDetail re-renders the detail pane for the current cursor position.
func (m *Model) refreshDetail() {
	m.detail.SetContent(m.renderSelected())
	m.detail.GotoTop()
}

func (m *Model) listWidth() int {
	w := m.width / 3
	if w < minListWidth {
		w = minListWidth
	}
	return w
}

func (m *Model) paneHeight() int {
	h := m.height - headerHeight - statusHeight - 2 // pane borders
	if h < 1 {
		h = 1
	}
	return h
}
