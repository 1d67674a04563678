package som

import (
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/text"
)

// ElementKind distinguishes text runs from images
type ElementKind int

const (
	ElementText ElementKind = iota
	ElementImage
)

// Element is a leaf wrapping one rendered primitive, or the character range
// [StartIndex, EndIndex) of a glyph run.
type Element struct {
	box

	ElementKind ElementKind
	Node        model.FixedNode
	StartIndex  int
	EndIndex    int
	Matrix      model.Matrix

	// text run
	Text      string
	FontSize  float64
	Direction text.Direction

	// image
	Source string

	NavigateURI string
}

// Kind implements Box
func (e *Element) Kind() Kind { return KindElement }

// IsImage reports whether the element wraps an image
func (e *Element) IsImage() bool {
	return e.ElementKind == ElementImage
}

// IsWhiteSpace reports whether the element is a text run made only of
// whitespace
func (e *Element) IsWhiteSpace() bool {
	return !e.IsImage() && text.IsWhiteSpace(e.Text)
}

// IsRTL reports whether the element reads right to left
func (e *Element) IsRTL() bool {
	return e.Direction == text.RTL
}

// NewTextElement creates a detached text element for the run
// [start, end) of a glyph primitive. The bounds are the caret span of that
// range in page space.
func NewTextElement(prim *model.Primitive, start, end int) *Element {
	runes := []rune(prim.Text)
	start = min(max(start, 0), len(runes))
	if end > len(runes) || end < start {
		end = len(runes)
	}

	offsets := prim.CaretOffsets()
	local := model.NewRect(offsets[start], prim.Bounds.Top(), offsets[end], prim.Bounds.Bottom())
	matrix := prim.Transform.OrIdentity()
	content := string(runes[start:end])

	dir := text.DirectionFromBidiLevel(prim.BidiLevel)
	if detected := text.DetectDirection(content); detected != text.Neutral {
		dir = detected
	}

	return &Element{
		box:         newBox(matrix.TransformRect(local)),
		ElementKind: ElementText,
		Node:        prim.Node,
		StartIndex:  start,
		EndIndex:    end,
		Matrix:      matrix,
		Text:        content,
		FontSize:    prim.FontSize,
		Direction:   dir,
		NavigateURI: prim.NavigateURI,
	}
}

// NewImageElement creates a detached image element
func NewImageElement(prim *model.Primitive) *Element {
	return &Element{
		box:         newBox(prim.PageBounds()),
		ElementKind: ElementImage,
		Node:        prim.Node,
		Matrix:      prim.Transform.OrIdentity(),
		Source:      prim.Source,
		NavigateURI: prim.NavigateURI,
	}
}

// NewElement creates a detached text element with explicit bounds
func NewElement(node model.FixedNode, rect model.Rect, content string) *Element {
	return &Element{
		box:         newBox(rect),
		ElementKind: ElementText,
		Node:        node,
		EndIndex:    len([]rune(content)),
		Matrix:      model.Identity(),
		Text:        content,
		Direction:   text.DetectDirection(content),
	}
}
