package som

import (
	"math"
	"sort"

	"github.com/tsawler/fixedsom/model"
)

// MinLineSeparation is the distance under which two ruling segments on the
// same line are merged, and the positional tolerance used when looking a
// line up.
const MinLineSeparation = 3.0

// separationMargin is the fraction of a box's extent that a ruling segment
// may fall short of at either end and still separate the box
const separationMargin = 0.1

// LineRanges is the set of ruling segments lying on one line. Line is the
// perpendicular coordinate (Y for horizontal rules, X for vertical ones);
// Start and End are parallel, sorted and never overlapping.
type LineRanges struct {
	Line  float64
	Start []float64
	End   []float64
}

// NewLineRanges creates an empty range set for the line at pos
func NewLineRanges(pos float64) *LineRanges {
	return &LineRanges{Line: pos}
}

// Count returns the number of disjoint segments
func (r *LineRanges) Count() int {
	return len(r.Start)
}

// AddRange inserts the interval [start, end]. Intervals that overlap an
// existing one, or come within MinLineSeparation of it, are merged.
func (r *LineRanges) AddRange(start, end float64) {
	if end < start {
		start, end = end, start
	}

	// first interval whose end reaches the new start
	i := sort.Search(len(r.End), func(k int) bool {
		return r.End[k]+MinLineSeparation >= start
	})
	// first interval that starts past the new end
	j := sort.Search(len(r.Start), func(k int) bool {
		return r.Start[k]-MinLineSeparation > end
	})

	if i < j {
		start = math.Min(start, r.Start[i])
		end = math.Max(end, r.End[j-1])
	}

	r.Start = splice(r.Start, i, j, start)
	r.End = splice(r.End, i, j, end)
}

// splice replaces s[i:j] by a single value
func splice(s []float64, i, j int, v float64) []float64 {
	out := make([]float64, 0, len(s)-(j-i)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	out = append(out, s[j:]...)
	return out
}

// covers reports whether a single segment spans [from, to]
func (r *LineRanges) covers(from, to float64) bool {
	i := sort.Search(len(r.End), func(k int) bool {
		return r.End[k] >= to
	})
	return i < len(r.Start) && r.Start[i] <= from
}

// LineCollection indexes the ruling lines of a page. Horizontal and
// vertical lines are kept separately, each sorted by position.
type LineCollection struct {
	horizontal []*LineRanges
	vertical   []*LineRanges
}

// NewLineCollection creates an empty collection
func NewLineCollection() *LineCollection {
	return &LineCollection{}
}

// AddHorizontal records a horizontal segment at y spanning [x1, x2]
func (c *LineCollection) AddHorizontal(y, x1, x2 float64) {
	c.horizontal = addLineToRanges(c.horizontal, y, x1, x2)
}

// AddVertical records a vertical segment at x spanning [y1, y2]
func (c *LineCollection) AddVertical(x, y1, y2 float64) {
	c.vertical = addLineToRanges(c.vertical, x, y1, y2)
}

// addLineToRanges adds a segment to the line at pos, creating the line when
// no existing one lies within half MinLineSeparation.
func addLineToRanges(lines []*LineRanges, pos, start, end float64) []*LineRanges {
	idx := sort.Search(len(lines), func(k int) bool {
		return lines[k].Line >= pos
	})

	for _, k := range []int{idx - 1, idx} {
		if k >= 0 && k < len(lines) && math.Abs(lines[k].Line-pos) < MinLineSeparation/2 {
			lines[k].AddRange(start, end)
			return lines
		}
	}

	r := NewLineRanges(pos)
	r.AddRange(start, end)
	lines = append(lines, nil)
	copy(lines[idx+1:], lines[idx:])
	lines[idx] = r
	return lines
}

// Horizontal returns the horizontal lines sorted by Y
func (c *LineCollection) Horizontal() []*LineRanges {
	return c.horizontal
}

// Vertical returns the vertical lines sorted by X
func (c *LineCollection) Vertical() []*LineRanges {
	return c.vertical
}

// IsEmpty reports whether no lines were recorded
func (c *LineCollection) IsEmpty() bool {
	return len(c.horizontal) == 0 && len(c.vertical) == 0
}

// GetLineIndex returns the index of the horizontal line at y, within
// MinLineSeparation, or -1.
func (c *LineCollection) GetLineIndex(y float64) int {
	return lineIndex(c.horizontal, y)
}

// GetVerticalLineIndex returns the index of the vertical line at x, within
// MinLineSeparation, or -1.
func (c *LineCollection) GetVerticalLineIndex(x float64) int {
	return lineIndex(c.vertical, x)
}

func lineIndex(lines []*LineRanges, pos float64) int {
	idx := sort.Search(len(lines), func(k int) bool {
		return lines[k].Line >= pos-MinLineSeparation
	})
	if idx < len(lines) && lines[idx].Line <= pos+MinLineSeparation {
		return idx
	}
	return -1
}

// IsHorizontallySeparated reports whether a horizontal rule crosses rect
// from left to right, splitting it into an upper and a lower part.
func (c *LineCollection) IsHorizontallySeparated(rect model.Rect) bool {
	if rect.IsEmpty() {
		return false
	}
	margin := rect.Width * separationMargin
	return isSeparated(c.horizontal, rect.Top(), rect.Bottom(),
		rect.Left()+margin, rect.Right()-margin)
}

// IsVerticallySeparated reports whether a vertical rule crosses rect from
// top to bottom, splitting it into a left and a right part.
func (c *LineCollection) IsVerticallySeparated(rect model.Rect) bool {
	if rect.IsEmpty() {
		return false
	}
	margin := rect.Height * separationMargin
	return isSeparated(c.vertical, rect.Left(), rect.Right(),
		rect.Top()+margin, rect.Bottom()-margin)
}

// isSeparated looks for a line strictly between lo and hi whose ranges
// cover [from, to].
func isSeparated(lines []*LineRanges, lo, hi, from, to float64) bool {
	idx := sort.Search(len(lines), func(k int) bool {
		return lines[k].Line > lo
	})
	for ; idx < len(lines) && lines[idx].Line < hi; idx++ {
		if lines[idx].covers(from, to) {
			return true
		}
	}
	return false
}
