package som

import (
	"fmt"
	"strings"

	"github.com/tsawler/fixedsom/model"
)

// Diagnostic is a read-only description of one box, for debugging dumps
type Diagnostic struct {
	ID    NodeID     `json:"id"`
	Kind  Kind       `json:"kind"`
	Depth int        `json:"depth"`
	Label string     `json:"label"`
	Rect  model.Rect `json:"rect"`
}

// Diagnostics lists every box reachable from the page root in reading
// order, depth first.
func (p *Page) Diagnostics() []Diagnostic {
	var out []Diagnostic
	p.Walk(p.Root(), func(b Box, depth int) bool {
		out = append(out, Diagnostic{
			ID:    b.ID(),
			Kind:  b.Kind(),
			Depth: depth,
			Label: p.label(b),
			Rect:  b.BoundingRect(),
		})
		return true
	})
	return out
}

func (p *Page) label(b Box) string {
	switch v := b.(type) {
	case *Element:
		if v.IsImage() {
			return "image " + v.Source
		}
		return fmt.Sprintf("%q", v.Text)
	case *FixedBlock:
		if v.IsRTL() {
			return "rtl"
		}
		return ""
	case *Table:
		return fmt.Sprintf("%d columns", v.columnCount)
	case *TableCell:
		if v.ColumnSpan > 1 {
			return fmt.Sprintf("span %d", v.ColumnSpan)
		}
	case *Page:
		return fmt.Sprintf("page %d", v.Index)
	}
	return ""
}

// String renders a diagnostic as one indented line
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", d.Depth))
	fmt.Fprintf(&sb, "%s#%d", d.Kind, d.ID)
	if !d.Rect.IsEmpty() {
		fmt.Fprintf(&sb, " [%.1f,%.1f %.1fx%.1f]", d.Rect.X, d.Rect.Y, d.Rect.Width, d.Rect.Height)
	}
	if d.Label != "" {
		sb.WriteString(" ")
		sb.WriteString(d.Label)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
