package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probeops/swisskit/internal/cppname"
	"github.com/probeops/swisskit/pkg/types"
	"github.com/probeops/swisskit/swiss"
)

// Constructor builds a printer for a matched container value.
type Constructor func(val types.Value, res *swiss.Resolver) types.Printer

// base carries what every container printer shares: the table accessor and
// the variant token used in summaries.
type base struct {
	val     types.Value
	tbl     *swiss.Table
	root    string // root namespace token, e.g. "absl::"
	variant string // "flat" or "node"
}

func newBase(val types.Value, res *swiss.Resolver, variant string) base {
	return base{
		val:     val,
		tbl:     swiss.NewTable(val, res),
		root:    res.Config().RootNamespace,
		variant: variant,
	}
}

// templateArgs extracts the declared type parameters from the container's
// runtime type name.
func (b *base) templateArgs() []string {
	name := b.val.Type().StripAliases().Name()
	open := strings.IndexByte(name, '<')
	closing := cppname.MatchBrackets(name)
	if open == -1 || closing == -1 {
		return nil
	}
	args := cppname.SplitTemplateArgs(name[open+1 : closing])
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args
}

func (b *base) arg(i int) string {
	args := b.templateArgs()
	if i >= len(args) {
		return "?"
	}
	return args[i]
}

// -----------------------------------------------------------------------------
// Set printers
// -----------------------------------------------------------------------------

// FlatSetPrinter prints flat_hash_set: slots hold elements inline.
type FlatSetPrinter struct{ base }

// NodeSetPrinter prints node_hash_set: slots hold owning pointers to
// heap-allocated elements.
type NodeSetPrinter struct{ base }

// NewFlatSetPrinter is the Constructor for flat_hash_set.
func NewFlatSetPrinter(val types.Value, res *swiss.Resolver) types.Printer {
	return &FlatSetPrinter{newBase(val, res, "flat")}
}

// NewNodeSetPrinter is the Constructor for node_hash_set.
func NewNodeSetPrinter(val types.Value, res *swiss.Resolver) types.Printer {
	return &NodeSetPrinter{newBase(val, res, "node")}
}

func (b *base) setSummary() (string, error) {
	n, err := b.tbl.Len()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s_hash_set<%s> with %d elems", b.root, b.variant, b.arg(0), n), nil
}

func (p *FlatSetPrinter) Summary() (string, error) { return p.setSummary() }
func (p *NodeSetPrinter) Summary() (string, error) { return p.setSummary() }

func (p *FlatSetPrinter) Children() types.ChildIterator {
	return &setChildren{tbl: p.tbl}
}

func (p *NodeSetPrinter) Children() types.ChildIterator {
	return &setChildren{tbl: p.tbl, deref: true}
}

// Sets report flat, indexable children.
func (p *FlatSetPrinter) DisplayHint() types.DisplayHint { return types.HintArray }
func (p *NodeSetPrinter) DisplayHint() types.DisplayHint { return types.HintArray }

// setChildren yields one labelled child per occupied slot. The slot walk is
// created on first use so the printer itself stays cheap to construct.
type setChildren struct {
	tbl   *swiss.Table
	deref bool

	slots *swiss.SlotIterator
	err   error
	count int
}

func (it *setChildren) Next() (types.Child, error) {
	if it.slots == nil && it.err == nil {
		it.slots, it.err = it.tbl.Slots()
	}
	if it.err != nil {
		return types.Child{}, it.err
	}

	v, err := it.slots.Next()
	if err != nil {
		return types.Child{}, err
	}
	if it.deref {
		if v, err = v.Deref(); err != nil {
			it.err = err
			return types.Child{}, err
		}
	}

	c := types.Child{Label: strconv.Itoa(it.count), Value: v}
	it.count++
	return c, nil
}

// -----------------------------------------------------------------------------
// Map printers
// -----------------------------------------------------------------------------

// FlatMapPrinter prints flat_hash_map: slots hold a map_slot_type whose key
// lives in a top-level field.
type FlatMapPrinter struct{ base }

// NodeMapPrinter prints node_hash_map: slots point at heap-allocated pairs.
type NodeMapPrinter struct{ base }

// NewFlatMapPrinter is the Constructor for flat_hash_map.
func NewFlatMapPrinter(val types.Value, res *swiss.Resolver) types.Printer {
	return &FlatMapPrinter{newBase(val, res, "flat")}
}

// NewNodeMapPrinter is the Constructor for node_hash_map.
func NewNodeMapPrinter(val types.Value, res *swiss.Resolver) types.Printer {
	return &NodeMapPrinter{newBase(val, res, "node")}
}

func (b *base) mapSummary() (string, error) {
	n, err := b.tbl.Len()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s_hash_map<%s, %s> with %d elems",
		b.root, b.variant, b.arg(0), b.arg(1), n), nil
}

func (p *FlatMapPrinter) Summary() (string, error) { return p.mapSummary() }
func (p *NodeMapPrinter) Summary() (string, error) { return p.mapSummary() }

func (p *FlatMapPrinter) Children() types.ChildIterator {
	return &mapChildren{tbl: p.tbl}
}

func (p *NodeMapPrinter) Children() types.ChildIterator {
	return &mapChildren{tbl: p.tbl, node: true}
}

// Maps report alternating key/value children.
func (p *FlatMapPrinter) DisplayHint() types.DisplayHint { return types.HintMap }
func (p *NodeMapPrinter) DisplayHint() types.DisplayHint { return types.HintMap }

// mapChildren yields two labelled children per occupied slot: the key, then
// the mapped value. The two backends store the key differently: the flat
// slot exposes it as a top-level field, while the node slot points at a
// pair whose first/second members hold key and value.
type mapChildren struct {
	tbl  *swiss.Table
	node bool

	slots   *swiss.SlotIterator
	err     error
	count   int
	pending types.Value // value child of the slot whose key was just emitted
}

func (it *mapChildren) Next() (types.Child, error) {
	if it.pending != nil {
		c := types.Child{Label: strconv.Itoa(it.count), Value: it.pending}
		it.pending = nil
		it.count++
		return c, nil
	}

	if it.slots == nil && it.err == nil {
		it.slots, it.err = it.tbl.Slots()
	}
	if it.err != nil {
		return types.Child{}, it.err
	}

	slot, err := it.slots.Next()
	if err != nil {
		return types.Child{}, err
	}

	var key, mapped types.Value
	if it.node {
		kv, err := slot.Deref()
		if err != nil {
			it.err = err
			return types.Child{}, err
		}
		if key, err = kv.Field("first"); err != nil {
			it.err = err
			return types.Child{}, err
		}
		if mapped, err = kv.Field("second"); err != nil {
			it.err = err
			return types.Child{}, err
		}
	} else {
		if key, err = slot.Field("key"); err != nil {
			it.err = err
			return types.Child{}, err
		}
		pair, err := slot.Field("value")
		if err != nil {
			it.err = err
			return types.Child{}, err
		}
		if mapped, err = pair.Field("second"); err != nil {
			it.err = err
			return types.Child{}, err
		}
	}

	it.pending = mapped
	c := types.Child{Label: strconv.Itoa(it.count), Value: key}
	it.count++
	return c, nil
}
