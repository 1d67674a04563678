package flow

import (
	"sort"

	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
)

// FixedLineResult is one visual text line of a page
type FixedLineResult struct {
	// Nodes are the primitives on the line in reading order
	Nodes []model.FixedNode

	// LayoutBox is the union of the element bounds
	LayoutBox model.Rect

	// Baseline is the page Y of the line baseline, the bottom of the
	// lowest element
	Baseline float64
}

// LineResults collects the text lines of every block of a page, sorted by
// top and then left
func LineResults(page *som.Page) []FixedLineResult {
	var results []FixedLineResult
	page.Walk(page.Root(), func(b som.Box, _ int) bool {
		if _, ok := b.(*som.FixedBlock); !ok {
			return true
		}
		results = append(results, blockLines(page, b.ID())...)
		return false
	})

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].LayoutBox, results[j].LayoutBox
		if a.Top() != b.Top() {
			return a.Top() < b.Top()
		}
		return a.Left() < b.Left()
	})
	return results
}

// blockLines splits the elements of a block where one element is strictly
// below the line built so far
func blockLines(page *som.Page, block som.NodeID) []FixedLineResult {
	var lines []FixedLineResult
	var cur *FixedLineResult
	for _, id := range page.ChildrenOf(block) {
		e, ok := page.Element(id)
		if !ok || e.IsImage() {
			continue
		}
		r := e.BoundingRect()
		if cur != nil && som.CompareVertical(cur.LayoutBox, r) == som.Before {
			lines = append(lines, *cur)
			cur = nil
		}
		if cur == nil {
			cur = &FixedLineResult{LayoutBox: model.EmptyRect(), Baseline: r.Bottom()}
		}
		if n := len(cur.Nodes); n == 0 || !cur.Nodes[n-1].Equal(e.Node) {
			cur.Nodes = append(cur.Nodes, e.Node)
		}
		cur.LayoutBox = cur.LayoutBox.Union(r)
		if r.Bottom() > cur.Baseline {
			cur.Baseline = r.Bottom()
		}
	}
	if cur != nil {
		lines = append(lines, *cur)
	}
	return lines
}

// FindLine returns the index of the line containing p, or -1
func FindLine(lines []FixedLineResult, p model.Point) int {
	for i := range lines {
		if lines[i].LayoutBox.Contains(p) {
			return i
		}
		if lines[i].LayoutBox.Top() > p.Y {
			break
		}
	}
	return -1
}
