package printer

import (
	"encoding/json"
	"io"

	"github.com/probeops/swisskit/pkg/types"
)

type jsonEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type jsonDoc struct {
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Summary   string      `json:"summary,omitempty"`
	Hint      string      `json:"hint,omitempty"`
	Value     string      `json:"value,omitempty"`    // non-container values
	Elements  []string    `json:"elements,omitempty"` // set children
	Entries   []jsonEntry `json:"entries,omitempty"`  // map children
	Truncated bool        `json:"truncated,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func (r *Renderer) renderJSON(name string, val types.Value) error {
	doc := jsonDoc{
		Name: name,
		Type: val.Type().Name(),
	}

	p := r.reg.For(val)
	if p == nil {
		doc.Value = val.String()
		return r.encode(doc)
	}

	summary, err := p.Summary()
	if err != nil {
		doc.Error = err.Error()
		return r.encode(doc)
	}
	doc.Summary = summary
	doc.Hint = string(p.DisplayHint())

	if p.DisplayHint() == types.HintMap {
		r.jsonMapChildren(&doc, p.Children())
	} else {
		r.jsonArrayChildren(&doc, p.Children())
	}
	return r.encode(doc)
}

func (r *Renderer) jsonArrayChildren(doc *jsonDoc, it types.ChildIterator) {
	for n := 0; ; n++ {
		if r.opts.MaxElems > 0 && n == r.opts.MaxElems {
			doc.Truncated = true
			return
		}
		c, err := it.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			doc.Error = err.Error()
			return
		}
		doc.Elements = append(doc.Elements, c.Value.String())
	}
}

func (r *Renderer) jsonMapChildren(doc *jsonDoc, it types.ChildIterator) {
	for n := 0; ; n++ {
		if r.opts.MaxElems > 0 && n == r.opts.MaxElems {
			doc.Truncated = true
			return
		}
		key, err := it.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			doc.Error = err.Error()
			return
		}
		val, err := it.Next()
		if err != nil {
			doc.Error = err.Error()
			return
		}
		doc.Entries = append(doc.Entries, jsonEntry{Key: key.Value.String(), Value: val.Value.String()})
	}
}

func (r *Renderer) encode(doc jsonDoc) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
