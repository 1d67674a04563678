package som

import (
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/text"
)

// FixedBlock is a run of elements that read as one paragraph
type FixedBlock struct {
	container

	vote       text.Vote
	lineMatrix model.Matrix
	hasMatrix  bool

	texts      int
	whitespace int
	images     int
}

// Kind implements Box
func (b *FixedBlock) Kind() Kind { return KindFixedBlock }

// IsRTL reports whether right-to-left text holds the majority
func (b *FixedBlock) IsRTL() bool {
	return b.vote.IsRTL()
}

// Vote returns the direction vote of the text elements
func (b *FixedBlock) Vote() text.Vote {
	return b.vote
}

// LineMatrix returns the rotation and scale shared by the text lines of the
// block, taken from its first text element.
func (b *FixedBlock) LineMatrix() (model.Matrix, bool) {
	return b.lineMatrix, b.hasMatrix
}

// IsWhiteSpace reports whether the block holds nothing but whitespace runs
func (b *FixedBlock) IsWhiteSpace() bool {
	return b.images == 0 && b.whitespace == b.texts
}

// IsFloatingImage reports whether the block wraps exactly one image
func (b *FixedBlock) IsFloatingImage() bool {
	return b.images == 1 && len(b.children) == 1
}

func (b *FixedBlock) reset() {
	b.vote = text.Vote{}
	b.lineMatrix, b.hasMatrix = model.Matrix{}, false
	b.texts, b.whitespace, b.images = 0, 0, 0
}

func (b *FixedBlock) count(e *Element) {
	if e.IsImage() {
		b.images++
		return
	}
	b.texts++
	if e.IsWhiteSpace() {
		b.whitespace++
		return
	}
	b.vote.Add(e.Direction)
	if !b.hasMatrix {
		b.lineMatrix = e.Matrix.WithoutOffset()
		b.hasMatrix = true
	}
}

// Group is a set of blocks laid out as one column
type Group struct {
	container

	vote text.Vote
}

// Kind implements Box
func (g *Group) Kind() Kind { return KindGroup }

// IsRTL reports whether right-to-left blocks hold the majority
func (g *Group) IsRTL() bool {
	return g.vote.IsRTL()
}

// Vote returns the direction vote over the contained blocks
func (g *Group) Vote() text.Vote {
	return g.vote
}

func (g *Group) count(b *FixedBlock) {
	if b.IsFloatingImage() || b.IsWhiteSpace() {
		return
	}
	g.vote.Add(b.vote.Direction())
}

// Table is a grid of rows detected from ruling lines
type Table struct {
	container

	columnCount int
	vote        text.Vote

	// BorderThickness is the average width of the rules that formed the grid
	BorderThickness float64
}

// Kind implements Box
func (t *Table) Kind() Kind { return KindTable }

// ColumnCount returns the number of grid columns, spans included
func (t *Table) ColumnCount() int {
	return t.columnCount
}

// IsRTL reports whether the routed content is mostly right to left
func (t *Table) IsRTL() bool {
	return t.vote.IsRTL()
}

// Vote returns the direction vote over the routed blocks
func (t *Table) Vote() text.Vote {
	return t.vote
}

// TableRow is one row of a table
type TableRow struct {
	container
}

// Kind implements Box
func (r *TableRow) Kind() Kind { return KindTableRow }

// TableCell is one cell of a table row. Its bounds start as the grid cell
// and grow with the content.
type TableCell struct {
	container

	ColumnSpan int
}

// Kind implements Box
func (c *TableCell) Kind() Kind { return KindTableCell }
