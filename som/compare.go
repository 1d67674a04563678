package som

import (
	"math"

	"github.com/tsawler/fixedsom/model"
)

// ComparisonResult is the relative position of one box to another along a
// single axis
type ComparisonResult int

const (
	// Before means the first box lies entirely before the second
	Before ComparisonResult = iota
	// OverlapBefore means the boxes overlap and the first starts earlier
	OverlapBefore
	// Equal means the boxes start at the same place, within tolerance
	Equal
	// OverlapAfter means the boxes overlap and the first starts later
	OverlapAfter
	// After means the first box lies entirely after the second
	After
)

// equalTolerance is the fraction of the larger extent under which two
// reference coordinates still count as aligned
const equalTolerance = 0.1

func (c ComparisonResult) String() string {
	switch c {
	case Before:
		return "Before"
	case OverlapBefore:
		return "OverlapBefore"
	case Equal:
		return "Equal"
	case OverlapAfter:
		return "OverlapAfter"
	case After:
		return "After"
	default:
		return "Unknown"
	}
}

// Invert returns the result seen from the other box
func (c ComparisonResult) Invert() ComparisonResult {
	switch c {
	case Before:
		return After
	case OverlapBefore:
		return OverlapAfter
	case OverlapAfter:
		return OverlapBefore
	case After:
		return Before
	default:
		return c
	}
}

// precedes reports Before or OverlapBefore
func (c ComparisonResult) precedes() bool {
	return c == Before || c == OverlapBefore
}

// follows reports After or OverlapAfter
func (c ComparisonResult) follows() bool {
	return c == After || c == OverlapAfter
}

// CompareHorizontal compares a to b along the x axis. The reference
// coordinate is the left edge, or the right edge when rtl is set. The result
// is computed in left-to-right terms and then inverted for rtl, so Before
// always means "read first". Empty rectangles compare Equal.
func CompareHorizontal(a, b model.Rect, rtl bool) ComparisonResult {
	if a.IsEmpty() || b.IsEmpty() {
		return Equal
	}

	refA, refB := a.Left(), b.Left()
	if rtl {
		refA, refB = a.Right(), b.Right()
	}

	var result ComparisonResult
	switch {
	case refA == refB:
		return Equal
	case a.Right() < b.Left():
		result = Before
	case b.Right() < a.Left():
		result = After
	default:
		overlap := math.Abs(refA - refB)
		longer := math.Max(a.Width, b.Width)
		switch {
		case overlap/longer < equalTolerance:
			return Equal
		case a.Left() < b.Left():
			result = OverlapBefore
		default:
			result = OverlapAfter
		}
	}

	if rtl {
		result = result.Invert()
	}
	return result
}

// CompareVertical compares a to b along the y axis (top to bottom). Reading
// direction never affects it. Touching boxes (a.Bottom == b.Top) are
// strictly ordered. Empty rectangles compare Equal.
func CompareVertical(a, b model.Rect) ComparisonResult {
	if a.IsEmpty() || b.IsEmpty() {
		return Equal
	}

	switch {
	case a.Top() == b.Top():
		return Equal
	case a.Bottom() <= b.Top():
		return Before
	case b.Bottom() <= a.Top():
		return After
	}

	overlap := math.Abs(a.Top() - b.Top())
	longer := math.Max(a.Height, b.Height)
	switch {
	case overlap/longer < equalTolerance:
		return Equal
	case a.Top() < b.Top():
		return OverlapBefore
	default:
		return OverlapAfter
	}
}

// compareLeaf orders two leaf boxes (text runs, images) inside one block.
// Lines are read top to bottom and, within a line, along the reading
// direction.
func compareLeaf(a, b model.Rect, rtl bool) int {
	hor := CompareHorizontal(a, b, rtl)
	ver := CompareVertical(a, b)

	switch {
	case hor == Equal && ver == Equal:
		return 0
	case ver == Before:
		return -1
	case ver == After:
		return 1
	case ver == Equal:
		if hor.precedes() {
			return -1
		}
		return 1
	case hor == Before:
		return -1
	case hor == After:
		return 1
	case hor == Equal:
		if ver.precedes() {
			return -1
		}
		return 1
	case ver == OverlapBefore:
		return -1
	default:
		return 1
	}
}

// spatialTier is the outcome of the spatial tiers of the container order
type spatialTier int

const (
	tierUndecided spatialTier = iota
	tierStrict
	tierOverlap
)

// compareSpatial applies the two spatial tiers of the container order.
//
// Tier 1 (strict): a vertical Before/After decides unless the horizontal
// result is the strict opposite.
//
// Tier 2 (overlap-aware), as an explicit table:
//
//	vertical        horizontal                       result
//	OverlapBefore   Before, OverlapBefore, Equal     -1
//	OverlapAfter    Equal, OverlapAfter, After       +1
//	Equal           Before, OverlapBefore            -1
//	Equal           After, OverlapAfter              +1
//
// Every other combination is undecided.
func compareSpatial(ver, hor ComparisonResult) (int, spatialTier) {
	switch ver {
	case Before:
		if hor != After {
			return -1, tierStrict
		}
	case After:
		if hor != Before {
			return 1, tierStrict
		}
	case OverlapBefore:
		if hor == Before || hor == OverlapBefore || hor == Equal {
			return -1, tierOverlap
		}
	case OverlapAfter:
		if hor == Equal || hor == OverlapAfter || hor == After {
			return 1, tierOverlap
		}
	case Equal:
		if hor.precedes() {
			return -1, tierOverlap
		}
		if hor.follows() {
			return 1, tierOverlap
		}
	}
	return 0, tierUndecided
}
