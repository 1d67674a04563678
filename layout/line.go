package layout

import (
	"math"
	"sort"

	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
)

// Line is a run of text elements that share a baseline band and are not
// separated by a wide gap or a vertical rule
type Line struct {
	// Elements are the element ids, left to right
	Elements []som.NodeID

	// BBox is the union of the element bounds
	BBox model.Rect

	// Height is the average element height
	Height float64
}

// LineConfig holds configuration for line detection
type LineConfig struct {
	// LineHeightTolerance is the vertical distance between element centers,
	// as a fraction of element height, under which elements share a line
	// (default: 0.5)
	LineHeightTolerance float64

	// HorizontalGapThreshold is the horizontal gap, as a multiple of the
	// line height, that splits a line in two (default: 3.0)
	HorizontalGapThreshold float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineHeightTolerance:    0.5,
		HorizontalGapThreshold: 3.0,
	}
}

// LineDetector groups text elements into lines
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Detect groups the given text elements of a page into lines, sorted top
// to bottom and then left to right
func (d *LineDetector) Detect(page *som.Page, elements []som.NodeID) []Line {
	if len(elements) == 0 {
		return nil
	}

	type item struct {
		id     som.NodeID
		rect   model.Rect
		matrix model.Matrix
	}
	items := make([]item, 0, len(elements))
	for _, id := range elements {
		e, ok := page.Element(id)
		if !ok || e.IsImage() {
			continue
		}
		items = append(items, item{id: id, rect: e.BoundingRect(), matrix: e.Matrix.WithoutOffset()})
	}

	// Sort by vertical center, then X
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := items[i].rect.Center().Y, items[j].rect.Center().Y
		if ci != cj {
			return ci < cj
		}
		return items[i].rect.Left() < items[j].rect.Left()
	})

	var groups [][]item
	var current []item
	var currentCenter, currentHeight float64
	for _, it := range items {
		if len(current) > 0 {
			tolerance := math.Max(currentHeight, it.rect.Height) * d.config.LineHeightTolerance
			sameLine := math.Abs(it.rect.Center().Y-currentCenter) <= tolerance &&
				it.matrix == current[0].matrix
			if sameLine {
				current = append(current, it)
				n := float64(len(current))
				currentCenter = (currentCenter*(n-1) + it.rect.Center().Y) / n
				currentHeight = (currentHeight*(n-1) + it.rect.Height) / n
				continue
			}
			groups = append(groups, current)
		}
		current = []item{it}
		currentCenter = it.rect.Center().Y
		currentHeight = it.rect.Height
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	var lines []Line
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].rect.Left() < group[j].rect.Left()
		})

		var line Line
		for i, it := range group {
			if i > 0 && d.splits(page, line, it.rect) {
				lines = append(lines, line)
				line = Line{}
			}
			line.add(it.id, it.rect)
		}
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].BBox.Top() != lines[j].BBox.Top() {
			return lines[i].BBox.Top() < lines[j].BBox.Top()
		}
		return lines[i].BBox.Left() < lines[j].BBox.Left()
	})
	return lines
}

// splits reports whether next must start a new line after line
func (d *LineDetector) splits(page *som.Page, line Line, next model.Rect) bool {
	gap := next.Left() - line.BBox.Right()
	if gap > line.Height*d.config.HorizontalGapThreshold {
		return true
	}
	return page.Lines().IsVerticallySeparated(line.BBox.Union(next))
}

func (l *Line) add(id som.NodeID, r model.Rect) {
	n := float64(len(l.Elements))
	l.Elements = append(l.Elements, id)
	l.Height = (l.Height*n + r.Height) / (n + 1)
	if n == 0 {
		l.BBox = r
		return
	}
	l.BBox = l.BBox.Union(r)
}

// ElementCount returns the number of elements in the line
func (l *Line) ElementCount() int {
	return len(l.Elements)
}
