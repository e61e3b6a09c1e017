package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/probeops/swisskit/pkg/types"
)

func (r *Renderer) indent() string {
	n := r.opts.IndentSize
	if n <= 0 {
		n = DefaultIndentSize
	}
	return strings.Repeat(" ", n)
}

func (r *Renderer) renderText(name string, val types.Value) error {
	p := r.reg.For(val)
	if p == nil {
		_, err := fmt.Fprintf(r.writer, "%s = %s\n", name, val.String())
		return err
	}

	summary, err := p.Summary()
	if err != nil {
		_, werr := fmt.Fprintf(r.writer, "%s = <error: %v>\n", name, err)
		return werr
	}
	if _, err := fmt.Fprintf(r.writer, "%s = %s\n", name, summary); err != nil {
		return err
	}

	if p.DisplayHint() == types.HintMap {
		return r.textMapChildren(p.Children())
	}
	return r.textArrayChildren(p.Children())
}

func (r *Renderer) textArrayChildren(it types.ChildIterator) error {
	pad := r.indent()
	for n := 0; ; n++ {
		if r.opts.MaxElems > 0 && n == r.opts.MaxElems {
			_, err := fmt.Fprintf(r.writer, "%s...\n", pad)
			return err
		}
		c, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			_, werr := fmt.Fprintf(r.writer, "%s<error: %v>\n", pad, err)
			return werr
		}
		if _, err := fmt.Fprintf(r.writer, "%s[%s] = %s\n", pad, c.Label, c.Value); err != nil {
			return err
		}
	}
}

// textMapChildren consumes the alternating key/value sequence a map printer
// emits and renders one line per pair.
func (r *Renderer) textMapChildren(it types.ChildIterator) error {
	pad := r.indent()
	for n := 0; ; n++ {
		if r.opts.MaxElems > 0 && n == r.opts.MaxElems {
			_, err := fmt.Fprintf(r.writer, "%s...\n", pad)
			return err
		}
		key, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			_, werr := fmt.Fprintf(r.writer, "%s<error: %v>\n", pad, err)
			return werr
		}
		val, err := it.Next()
		if err != nil {
			// A key without its value means the walk died mid-pair.
			_, werr := fmt.Fprintf(r.writer, "%s[%d] %s => <error: %v>\n", pad, n, key.Value, err)
			return werr
		}
		if _, err := fmt.Fprintf(r.writer, "%s[%d] %s => %s\n", pad, n, key.Value, val.Value); err != nil {
			return err
		}
	}
}
