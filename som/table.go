package som

import (
	"math"
)

const (
	// cellContainmentTolerance is the fraction of a container's size that
	// may stick out of a cell while still being placed into it
	cellContainmentTolerance = 0.2

	minRowHeight   = 10.0
	minColumnWidth = 5.0
)

// AddToTable moves a detached container into the table cell that contains
// it. The container is shrunk by 20% of its size before the test so that
// content slightly overflowing the grid still lands in its cell. It returns
// false, leaving the container untouched, when no cell qualifies.
func (p *Page) AddToTable(table, child NodeID) bool {
	t, ok := p.Table(table)
	if !ok {
		return false
	}
	cb, ok := p.Box(child)
	if !ok || cb.Parent() != NoNode {
		return false
	}
	switch cb.Kind() {
	case KindFixedBlock, KindTable:
	default:
		return false
	}

	r := cb.BoundingRect()
	if r.IsEmpty() {
		return false
	}
	probe := r.Inflate(-r.Width*cellContainmentTolerance, -r.Height*cellContainmentTolerance)
	if probe.IsEmpty() {
		probe = r
	}

	for _, rowID := range t.children {
		row := p.boxes[rowID]
		if !row.BoundingRect().ContainsRect(probe) {
			continue
		}
		for _, cellID := range p.ChildrenOf(rowID) {
			cell, _ := p.TableCell(cellID)
			if !cell.seed.ContainsRect(probe) && !cell.rect.ContainsRect(probe) {
				continue
			}
			if err := p.Add(cellID, child); err != nil {
				return false
			}
			if b, ok := cb.(*FixedBlock); ok {
				t.vote.Add(b.vote.Direction())
			}
			return true
		}
	}
	return false
}

// IsEmpty reports whether a container holds no visible content. Blocks are
// empty when they hold only whitespace; cells, rows and tables when all
// their content is empty.
func (p *Page) IsEmpty(id NodeID) bool {
	b, ok := p.Box(id)
	if !ok {
		return true
	}
	switch v := b.(type) {
	case *Element:
		return v.IsWhiteSpace()
	case *FixedBlock:
		return v.IsWhiteSpace()
	case composite:
		for _, child := range v.cont().children {
			if !p.IsEmpty(child) {
				return false
			}
		}
		return true
	}
	return true
}

// DeleteEmptyRows drops empty rows lower than 10 units
func (p *Page) DeleteEmptyRows(table NodeID) {
	t, ok := p.Table(table)
	if !ok {
		return
	}
	kept := t.children[:0]
	for _, rowID := range t.children {
		row := p.boxes[rowID]
		if p.IsEmpty(rowID) && row.BoundingRect().Height < minRowHeight {
			row.base().parent = NoNode
			continue
		}
		kept = append(kept, rowID)
	}
	t.children = kept
	p.recount(t)
	p.InvalidateBounds(table)
}

// DeleteEmptyColumns removes columns narrower than 5 units that are empty
// in every row. Rows are walked with one cursor each, so rows whose cells
// were merged in the markup stay aligned: a row whose next cell starts past
// the next column boundary absorbs that column into the current cell's
// span unless the cell's own span already covers it. A removed column
// widens the cell before it by one span.
func (p *Page) DeleteEmptyColumns(table NodeID) {
	t, ok := p.Table(table)
	if !ok || len(t.children) == 0 {
		return
	}

	rows := make([]*TableRow, 0, len(t.children))
	for _, id := range t.children {
		if r, ok := p.TableRow(id); ok {
			rows = append(rows, r)
		}
	}
	cursor := make([]int, len(rows))
	// column boundaries crossed by the cell at each cursor
	crossed := make([]int, len(rows))

	for {
		deleteCol := true
		nextCol := math.Inf(1)
		for i, row := range rows {
			c := cursor[i]
			if c >= len(row.children) {
				deleteCol = false
				continue
			}
			cell := p.boxes[row.children[c]]
			if !p.IsEmpty(cell.ID()) || cell.BoundingRect().Width >= minColumnWidth {
				deleteCol = false
			}
			if c+1 < len(row.children) {
				nextCol = math.Min(nextCol, p.boxes[row.children[c+1]].BoundingRect().Left())
			}
		}

		if deleteCol {
			for i, row := range rows {
				c := cursor[i]
				p.boxes[row.children[c]].base().parent = NoNode
				row.removeAt(c)
				crossed[i] = 0
				if c > 0 {
					p.cell(row.children[c-1]).ColumnSpan++
				}
			}
			if math.IsInf(nextCol, 1) {
				break
			}
			continue
		}

		if math.IsInf(nextCol, 1) {
			break
		}

		for i, row := range rows {
			c := cursor[i]
			switch {
			case c+1 < len(row.children) &&
				p.boxes[row.children[c+1]].BoundingRect().Left() < nextCol+minColumnWidth:
				cursor[i]++
				crossed[i] = 0
			case c < len(row.children):
				crossed[i]++
				cell := p.cell(row.children[c])
				cell.ColumnSpan = max(cell.ColumnSpan, crossed[i]+1)
			case len(row.children) > 0:
				p.cell(row.children[len(row.children)-1]).ColumnSpan++
			}
		}
	}

	for _, row := range rows {
		p.InvalidateBounds(row.id)
	}
	p.recount(t)
	p.InvalidateBounds(table)
}

func (p *Page) cell(id NodeID) *TableCell {
	c, _ := p.TableCell(id)
	return c
}

// RowCount returns the number of rows of a table
func (p *Page) RowCount(table NodeID) int {
	t, ok := p.Table(table)
	if !ok {
		return 0
	}
	return len(t.children)
}

// CellCount returns the number of cells across all rows of a table
func (p *Page) CellCount(table NodeID) int {
	n := 0
	for _, row := range p.ChildrenOf(table) {
		n += len(p.ChildrenOf(row))
	}
	return n
}
