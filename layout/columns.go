package layout

import (
	"math"
	"sort"

	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
)

// Column represents a detected column of containers
type Column struct {
	// Bounding box of the column content
	BBox model.Rect

	// Members are the containers assigned to the column
	Members []som.NodeID

	// Index of the column (0-based, left to right)
	Index int
}

// ColumnConfig holds configuration for column detection
type ColumnConfig struct {
	// MinColumnWidth is the minimum width for a region to be considered a column
	// Default: 50 points
	MinColumnWidth float64

	// MinGapWidth is the minimum whitespace gap to consider as column separator
	// Default: 20 points
	MinGapWidth float64

	// MinGapHeightRatio is the minimum vertical extent of a gap, as a ratio
	// of the content height (0.0 to 1.0)
	// Default: 0.5
	MinGapHeightRatio float64

	// MaxColumns is the maximum number of columns to detect
	// Default: 6
	MaxColumns int
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		MinColumnWidth:    50.0,
		MinGapWidth:       20.0,
		MinGapHeightRatio: 0.5,
		MaxColumns:        6,
	}
}

// ColumnDetector detects multi-column layouts from container bounds
type ColumnDetector struct {
	config ColumnConfig
}

// NewColumnDetector creates a new column detector with default configuration
func NewColumnDetector() *ColumnDetector {
	return &ColumnDetector{
		config: DefaultColumnConfig(),
	}
}

// NewColumnDetectorWithConfig creates a column detector with custom configuration
func NewColumnDetectorWithConfig(config ColumnConfig) *ColumnDetector {
	return &ColumnDetector{
		config: config,
	}
}

// Gap represents a vertical whitespace gap
type Gap struct {
	Left  float64 // Left edge of gap
	Right float64 // Right edge of gap
}

// slab represents a horizontal range (for gap detection)
type slab struct {
	left, right float64
}

// Width returns the width of the gap
func (g Gap) Width() float64 {
	return g.Right - g.Left
}

// Center returns the X center of the gap
func (g Gap) Center() float64 {
	return (g.Left + g.Right) / 2
}

// Detect finds the columns formed by the given containers. It returns nil
// when the content is a single column. Containers spanning a column gap
// belong to no column.
func (d *ColumnDetector) Detect(page *som.Page, ids []som.NodeID) []Column {
	rects := make([]model.Rect, 0, len(ids))
	members := make([]som.NodeID, 0, len(ids))
	for _, id := range ids {
		b, ok := page.Box(id)
		if !ok || b.BoundingRect().IsEmpty() {
			continue
		}
		rects = append(rects, b.BoundingRect())
		members = append(members, id)
	}
	if len(rects) < 2 {
		return nil
	}

	gaps := d.findVerticalGaps(rects)
	if len(gaps) == 0 {
		return nil
	}

	columns := d.createColumnsFromGaps(rects, members, gaps)
	columns = d.validateColumns(columns)
	if len(columns) < 2 {
		return nil
	}
	return columns
}

// findVerticalGaps finds significant vertical whitespace gaps
func (d *ColumnDetector) findVerticalGaps(rects []model.Rect) []Gap {
	// Build a list of horizontal "slabs" - the X ranges covered by content
	slabs := make([]slab, 0, len(rects))
	content := model.EmptyRect()
	for _, r := range rects {
		slabs = append(slabs, slab{left: r.Left(), right: r.Right()})
		content = content.Union(r)
	}

	sort.Slice(slabs, func(i, j int) bool {
		return slabs[i].left < slabs[j].left
	})

	// Merge overlapping slabs to get covered regions
	merged := mergeSlabs(slabs)

	// Find gaps between merged regions
	var gaps []Gap
	for i := 0; i < len(merged)-1; i++ {
		gap := Gap{Left: merged[i].right, Right: merged[i+1].left}
		if gap.Width() < d.config.MinGapWidth {
			continue
		}
		if measureGapVerticalExtent(rects, gap, content) >= d.config.MinGapHeightRatio {
			gaps = append(gaps, gap)
		}
	}

	// Limit to max columns - 1 gaps
	if d.config.MaxColumns > 0 && len(gaps) >= d.config.MaxColumns {
		gaps = gaps[:d.config.MaxColumns-1]
	}

	return gaps
}

// mergeSlabs merges overlapping horizontal slabs
func mergeSlabs(slabs []slab) []slab {
	if len(slabs) == 0 {
		return nil
	}

	merged := []slab{slabs[0]}

	for i := 1; i < len(slabs); i++ {
		current := slabs[i]
		last := &merged[len(merged)-1]

		// Check for overlap or adjacency (with small tolerance)
		if current.left <= last.right+5.0 {
			if current.right > last.right {
				last.right = current.right
			}
		} else {
			merged = append(merged, current)
		}
	}

	return merged
}

// measureGapVerticalExtent measures what fraction of the content height a
// gap stays open
func measureGapVerticalExtent(rects []model.Rect, gap Gap, content model.Rect) float64 {
	if content.Height <= 0 {
		return 0
	}

	// Collect Y ranges of boxes that cross the gap region
	var blocked []slab
	for _, r := range rects {
		if r.Right() > gap.Left && r.Left() < gap.Right {
			blocked = append(blocked, slab{left: r.Top(), right: r.Bottom()})
		}
	}
	if len(blocked) == 0 {
		return 1.0
	}

	sort.Slice(blocked, func(i, j int) bool {
		return blocked[i].left < blocked[j].left
	})

	blockedHeight := 0.0
	start, end := blocked[0].left, blocked[0].right
	for _, b := range blocked[1:] {
		if b.left <= end {
			end = math.Max(end, b.right)
			continue
		}
		blockedHeight += end - start
		start, end = b.left, b.right
	}
	blockedHeight += end - start

	return (content.Height - blockedHeight) / content.Height
}

// createColumnsFromGaps assigns each box to the column between two gaps
func (d *ColumnDetector) createColumnsFromGaps(rects []model.Rect, members []som.NodeID, gaps []Gap) []Column {
	sort.Slice(gaps, func(i, j int) bool {
		return gaps[i].Left < gaps[j].Left
	})

	columns := make([]Column, len(gaps)+1)
	for i := range columns {
		columns[i] = Column{BBox: model.EmptyRect(), Index: i}
	}

	for k, r := range rects {
		col := sort.Search(len(gaps), func(i int) bool {
			return gaps[i].Center() > r.Center().X
		})
		// must not reach into a neighbouring gap
		if col > 0 && r.Left() < gaps[col-1].Left {
			continue
		}
		if col < len(gaps) && r.Right() > gaps[col].Right {
			continue
		}
		columns[col].Members = append(columns[col].Members, members[k])
		columns[col].BBox = columns[col].BBox.Union(r)
	}

	return columns
}

// validateColumns drops empty and narrow columns
func (d *ColumnDetector) validateColumns(columns []Column) []Column {
	var valid []Column

	for _, col := range columns {
		if len(col.Members) == 0 {
			continue
		}
		if col.BBox.Width < d.config.MinColumnWidth {
			continue
		}
		valid = append(valid, col)
	}

	for i := range valid {
		valid[i].Index = i
	}

	return valid
}
