package ruling

import (
	"math"

	"github.com/tsawler/fixedsom/model"
)

// Line is a straight stroke found in a path primitive, in page space
type Line struct {
	Start model.Point
	End   model.Point

	// Width is the stroke thickness
	Width float64

	// Classification
	IsHorizontal bool
	IsVertical   bool

	// Source is the node of the path that drew the line
	Source model.FixedNode
}

// Length returns the length of the line
func (l Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// BBox returns the bounding box of the line
func (l Line) BBox() model.Rect {
	return model.NewRectFromPoints(l.Start, l.End)
}

// Rectangle is a closed four-sided axis-aligned figure, in page space
type Rectangle struct {
	BBox model.Rect

	StrokeWidth float64
	IsFilled    bool
	IsStroked   bool

	Source model.FixedNode
}

// Edges returns the four sides of the rectangle as lines
func (r Rectangle) Edges() []Line {
	b := r.BBox
	tl := model.Point{X: b.Left(), Y: b.Top()}
	tr := model.Point{X: b.Right(), Y: b.Top()}
	bl := model.Point{X: b.Left(), Y: b.Bottom()}
	br := model.Point{X: b.Right(), Y: b.Bottom()}
	return []Line{
		{Start: tl, End: tr, Width: r.StrokeWidth, IsHorizontal: true, Source: r.Source},
		{Start: bl, End: br, Width: r.StrokeWidth, IsHorizontal: true, Source: r.Source},
		{Start: tl, End: bl, Width: r.StrokeWidth, IsVertical: true, Source: r.Source},
		{Start: tr, End: br, Width: r.StrokeWidth, IsVertical: true, Source: r.Source},
	}
}

// pathReader walks the figures of one path primitive
type pathReader struct {
	prim      *model.Primitive
	transform model.Matrix
	tolerance float64
}

func newPathReader(prim *model.Primitive, tolerance float64) *pathReader {
	return &pathReader{
		prim:      prim,
		transform: prim.Transform.OrIdentity(),
		tolerance: tolerance,
	}
}

// detectRectangle checks whether a figure is a rectangle and returns it in
// page space
func (pr *pathReader) detectRectangle(fig model.PathFigure) (Rectangle, bool) {
	corners := []model.Point{fig.Start}
	for _, seg := range fig.Segments {
		if seg.Type != model.SegmentLine || len(seg.Points) == 0 {
			// Curves make this not a simple rectangle
			return Rectangle{}, false
		}
		corners = append(corners, seg.End())
	}

	// closed by segment back to the start
	if len(corners) == 5 {
		if !pointsEqual(corners[0], corners[4], 0.1) {
			return Rectangle{}, false
		}
		corners = corners[:4]
	}
	if len(corners) != 4 {
		return Rectangle{}, false
	}
	if len(fig.Segments) == 3 && !fig.Closed {
		return Rectangle{}, false
	}

	transformed := make([]model.Point, 4)
	for i, c := range corners {
		transformed[i] = pr.transform.Transform(c)
	}

	if !isAxisAlignedRectangle(transformed, pr.tolerance) {
		return Rectangle{}, false
	}

	return Rectangle{
		BBox:   boundingBoxFromPoints(transformed),
		Source: pr.prim.Node,
	}, true
}

// lineSegments returns every straight segment of a figure in page space.
// Curves are approximated by their chord.
func (pr *pathReader) lineSegments(fig model.PathFigure) []Line {
	var lines []Line
	current := fig.Start
	for _, seg := range fig.Segments {
		end := seg.End()
		lines = append(lines, pr.createLine(current, end))
		current = end
	}
	if fig.Closed && !pointsEqual(current, fig.Start, 0.1) {
		lines = append(lines, pr.createLine(current, fig.Start))
	}
	return lines
}

// createLine creates a Line from two local points
func (pr *pathReader) createLine(start, end model.Point) Line {
	startPage := pr.transform.Transform(start)
	endPage := pr.transform.Transform(end)

	dx := endPage.X - startPage.X
	dy := endPage.Y - startPage.Y

	return Line{
		Start:        startPage,
		End:          endPage,
		Width:        pr.prim.LineWidth,
		IsHorizontal: math.Abs(dy) < pr.tolerance,
		IsVertical:   math.Abs(dx) < pr.tolerance,
		Source:       pr.prim.Node,
	}
}

// pointsEqual checks if two points are approximately equal
func pointsEqual(a, b model.Point, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}

// isAxisAlignedRectangle checks if four points form a rectangle whose sides
// are horizontal and vertical
func isAxisAlignedRectangle(corners []model.Point, tolerance float64) bool {
	if len(corners) != 4 {
		return false
	}

	for i := 0; i < 4; i++ {
		p0 := corners[i]
		p1 := corners[(i+1)%4]
		dx := math.Abs(p1.X - p0.X)
		dy := math.Abs(p1.Y - p0.Y)
		if dx >= tolerance && dy >= tolerance {
			return false
		}
	}

	// opposite corners must differ on both axes, or both sides collapse
	diag := corners[2]
	return math.Abs(diag.X-corners[0].X) >= tolerance || math.Abs(diag.Y-corners[0].Y) >= tolerance
}

// boundingBoxFromPoints calculates the bounding box of a set of points
func boundingBoxFromPoints(points []model.Point) model.Rect {
	out := model.EmptyRect()
	for _, p := range points {
		out = out.Union(model.Rect{X: p.X, Y: p.Y})
	}
	return out
}
