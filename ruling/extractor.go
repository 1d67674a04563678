package ruling

import (
	"github.com/tsawler/fixedsom/model"
)

// Extractor finds ruling lines (table borders, separators) in the path
// primitives of a fixed page
type Extractor struct {
	// AngleTolerance is the allowed deviation, in page units, for a line to
	// still count as horizontal or vertical
	AngleTolerance float64

	// MinLineLength drops strokes shorter than this
	MinLineLength float64

	// MaxRuleThickness is the largest extent a filled rectangle may have
	// on its short side to be treated as a drawn line
	MaxRuleThickness float64
}

// NewExtractor creates a new extractor with default settings
func NewExtractor() *Extractor {
	return &Extractor{
		AngleTolerance:   0.5,
		MinLineLength:    1.0,
		MaxRuleThickness: 3.0,
	}
}

// Result holds the ruling geometry found on one page
type Result struct {
	Lines      []Line
	Rectangles []Rectangle
}

// Extract collects ruling lines and rectangles from every path primitive of
// the page
func (e *Extractor) Extract(page *model.FixedPage) *Result {
	result := &Result{}
	if page == nil {
		return result
	}

	for i := range page.Primitives {
		prim := &page.Primitives[i]
		if prim.Kind != model.PrimitivePath {
			continue
		}
		e.extractPath(prim, result)
	}

	return result
}

// extractPath processes the figures of one path
func (e *Extractor) extractPath(prim *model.Primitive, result *Result) {
	reader := newPathReader(prim, e.AngleTolerance)

	for _, fig := range prim.Figures {
		if rect, ok := reader.detectRectangle(fig); ok {
			rect.IsFilled = prim.Filled
			rect.IsStroked = prim.Stroked
			rect.StrokeWidth = prim.LineWidth
			e.addRectangle(rect, result)
			continue
		}

		// Only stroked open figures draw lines
		if !prim.Stroked {
			continue
		}
		for _, line := range reader.lineSegments(fig) {
			if line.Length() >= e.MinLineLength && (line.IsHorizontal || line.IsVertical) {
				result.Lines = append(result.Lines, line)
			}
		}
	}
}

// addRectangle records a rectangle. Thin filled rectangles are rules and
// become a single line through their middle; any other rectangle
// contributes its four edges.
func (e *Extractor) addRectangle(rect Rectangle, result *Result) {
	b := rect.BBox
	if rect.IsFilled && !rect.IsStroked {
		switch {
		case b.Height <= e.MaxRuleThickness && b.Width > b.Height:
			y := b.Top() + b.Height/2
			result.Lines = append(result.Lines, Line{
				Start:        model.Point{X: b.Left(), Y: y},
				End:          model.Point{X: b.Right(), Y: y},
				Width:        b.Height,
				IsHorizontal: true,
				Source:       rect.Source,
			})
			return
		case b.Width <= e.MaxRuleThickness && b.Height > b.Width:
			x := b.Left() + b.Width/2
			result.Lines = append(result.Lines, Line{
				Start:      model.Point{X: x, Y: b.Top()},
				End:        model.Point{X: x, Y: b.Bottom()},
				Width:      b.Width,
				IsVertical: true,
				Source:     rect.Source,
			})
			return
		}
	}

	result.Rectangles = append(result.Rectangles, rect)
	for _, edge := range rect.Edges() {
		if edge.Length() >= e.MinLineLength {
			result.Lines = append(result.Lines, edge)
		}
	}
}

// Horizontals returns only horizontal lines
func (r *Result) Horizontals() []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.IsHorizontal {
			out = append(out, l)
		}
	}
	return out
}

// Verticals returns only vertical lines
func (r *Result) Verticals() []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.IsVertical {
			out = append(out, l)
		}
	}
	return out
}
