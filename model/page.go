package model

import (
	"sort"

	"golang.org/x/text/language"
)

// PrimitiveKind identifies the kind of rendered primitive
type PrimitiveKind int

const (
	PrimitiveUnknown PrimitiveKind = iota
	PrimitiveGlyphs
	PrimitiveImage
	PrimitivePath
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveGlyphs:
		return "Glyphs"
	case PrimitiveImage:
		return "Image"
	case PrimitivePath:
		return "Path"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k PrimitiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *PrimitiveKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Glyphs", "glyphs":
		*k = PrimitiveGlyphs
	case "Image", "image":
		*k = PrimitiveImage
	case "Path", "path":
		*k = PrimitivePath
	default:
		*k = PrimitiveUnknown
	}
	return nil
}

// SegmentType identifies a path segment
type SegmentType int

const (
	SegmentLine SegmentType = iota
	SegmentCurve
)

// Segment is one piece of a path figure. Line segments use only the last
// point; curves carry their control points first.
type Segment struct {
	Type   SegmentType `json:"type"`
	Points []Point     `json:"points"`
}

// End returns the segment end point
func (s Segment) End() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[len(s.Points)-1]
}

// PathFigure is a connected sequence of segments starting at Start
type PathFigure struct {
	Start    Point     `json:"start"`
	Segments []Segment `json:"segments"`
	Closed   bool      `json:"closed"`
}

// Primitive is one absolutely positioned visual on a fixed page
type Primitive struct {
	// Node is the structural path of the primitive
	Node FixedNode `json:"node"`

	Kind PrimitiveKind `json:"kind"`

	// Name is the optional markup name referenced by document structure
	Name string `json:"name,omitempty"`

	// Transform maps local coordinates to page coordinates. The zero
	// matrix means identity.
	Transform Matrix `json:"transform"`

	// Bounds is the local (untransformed) bounding box
	Bounds Rect `json:"bounds"`

	// Glyph run data
	Text      string    `json:"text,omitempty"`
	FontSize  float64   `json:"fontSize,omitempty"`
	Advances  []float64 `json:"advances,omitempty"` // per-character caret advances
	BidiLevel int       `json:"bidiLevel,omitempty"`

	// Image data
	Source string `json:"source,omitempty"`

	// Path data, in local coordinates
	Figures   []PathFigure `json:"figures,omitempty"`
	Stroked   bool         `json:"stroked,omitempty"`
	Filled    bool         `json:"filled,omitempty"`
	LineWidth float64      `json:"lineWidth,omitempty"`

	// NavigateURI marks the primitive as a hyperlink hot spot
	NavigateURI string `json:"navigateUri,omitempty"`
}

// PageBounds returns the bounding box of the primitive in page space
func (p *Primitive) PageBounds() Rect {
	return p.Transform.OrIdentity().TransformRect(p.Bounds)
}

// CaretOffsets returns the caret positions (local X) before each character
// and after the last one. Without advances the run width is divided evenly.
func (p *Primitive) CaretOffsets() []float64 {
	n := len([]rune(p.Text))
	offsets := make([]float64, n+1)
	offsets[0] = p.Bounds.Left()
	if len(p.Advances) >= n {
		for i := 0; i < n; i++ {
			offsets[i+1] = offsets[i] + p.Advances[i]
		}
		return offsets
	}
	step := 0.0
	if n > 0 {
		step = p.Bounds.Width / float64(n)
	}
	for i := 1; i <= n; i++ {
		offsets[i] = offsets[0] + step*float64(i)
	}
	return offsets
}

// Canvas is a named grouping element. It renders nothing itself; its
// children are the primitives whose node lies under Node.
type Canvas struct {
	Name string    `json:"name"`
	Node FixedNode `json:"node"`
}

// FixedPage is one page of positioned primitives in markup order
type FixedPage struct {
	Index  int     `json:"index"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Language is the page culture, propagated onto reconstructed content
	Language language.Tag `json:"language"`

	Primitives []Primitive `json:"primitives"`
	Canvases   []Canvas    `json:"canvases,omitempty"`

	// Structure is the optional document-structure hint tree of the page
	Structure *StructureNode `json:"structure,omitempty"`
}

// NewFixedPage creates an empty page with given dimensions
func NewFixedPage(index int, width, height float64) *FixedPage {
	return &FixedPage{
		Index:      index,
		Width:      width,
		Height:     height,
		Language:   language.Und,
		Primitives: make([]Primitive, 0),
	}
}

// AddPrimitive appends a primitive in markup order. A zero Node is filled in
// as the next direct child of the page.
func (p *FixedPage) AddPrimitive(prim Primitive) {
	if prim.Node.IsZero() {
		prim.Node = NewFixedNode(p.Index, len(p.Primitives))
	}
	p.Primitives = append(p.Primitives, prim)
}

// MarkupOrder returns the primitive nodes in the order they were rendered
func (p *FixedPage) MarkupOrder() []FixedNode {
	nodes := make([]FixedNode, len(p.Primitives))
	for i := range p.Primitives {
		nodes[i] = p.Primitives[i].Node
	}
	return nodes
}

// IsPathOrdered reports whether the primitives are sorted by node path
func (p *FixedPage) IsPathOrdered() bool {
	return sort.SliceIsSorted(p.Primitives, func(i, j int) bool {
		return p.Primitives[i].Node.Compare(p.Primitives[j].Node) < 0
	})
}

// PrimitivesOfKind returns the indices of all primitives of a kind
func (p *FixedPage) PrimitivesOfKind(kind PrimitiveKind) []int {
	var out []int
	for i := range p.Primitives {
		if p.Primitives[i].Kind == kind {
			out = append(out, i)
		}
	}
	return out
}
