package som

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/fixedsom/model"
)

// buildTable creates a table whose rows are given as lists of column
// boundaries; row i spans [tops[i], tops[i+1]].
func buildTable(t *testing.T, p *Page, tops []float64, cols []float64) NodeID {
	t.Helper()
	table := p.NewTable()
	for i := 0; i+1 < len(tops); i++ {
		row := p.NewTableRow()
		for j := 0; j+1 < len(cols); j++ {
			cell := p.NewTableCell(model.NewRect(cols[j], tops[i], cols[j+1], tops[i+1]))
			require.NoError(t, p.Add(row, cell))
		}
		require.NoError(t, p.Add(table, row))
	}
	return table
}

func cellAt(p *Page, table NodeID, row, col int) NodeID {
	return p.ChildrenOf(p.ChildrenOf(table)[row])[col]
}

func TestAddToTable(t *testing.T) {
	p := newTestPage(4)
	table := buildTable(t, p, []float64{0, 50, 100}, []float64{0, 100, 200})

	tb, _ := p.Table(table)
	assert.Equal(t, 2, tb.ColumnCount())
	assert.Equal(t, model.NewRect(0, 0, 200, 100), tb.BoundingRect())

	inside := addBlock(t, p, "a", []int{0}, model.NewRect(10, 10, 60, 30))
	require.True(t, p.AddToTable(table, inside))
	assert.Equal(t, cellAt(p, table, 0, 0), p.boxes[inside].Parent())

	// overflows the cell edge but its core is inside
	overflow := addBlock(t, p, "b", []int{1}, model.NewRect(70, 60, 105, 80))
	require.True(t, p.AddToTable(table, overflow))
	assert.Equal(t, cellAt(p, table, 1, 0), p.boxes[overflow].Parent())

	outside := addBlock(t, p, "c", []int{2}, model.NewRect(300, 300, 310, 310))
	assert.False(t, p.AddToTable(table, outside))
	assert.Equal(t, NoNode, p.boxes[outside].Parent())

	rtl := addBlock(t, p, "שלום", []int{3}, model.NewRect(110, 60, 190, 90))
	require.True(t, p.AddToTable(table, rtl))
	assert.Equal(t, 1, tb.Vote().RTL)
	assert.Equal(t, 2, tb.Vote().LTR)

	// already placed
	assert.False(t, p.AddToTable(table, inside))
	assert.False(t, p.AddToTable(NodeID(999), outside))
}

func TestDeleteEmptyRows(t *testing.T) {
	p := newTestPage(1)
	table := buildTable(t, p, []float64{0, 5, 10, 30}, []float64{0, 100})
	rows := p.ChildrenOf(table)

	filled := addBlock(t, p, "x", []int{0}, model.NewRect(10, 5.5, 20, 9.5))
	require.True(t, p.AddToTable(table, filled))

	p.DeleteEmptyRows(table)

	// thin empty row dropped, thin filled row and tall empty row kept
	assert.Equal(t, []NodeID{rows[1], rows[2]}, p.ChildrenOf(table))
	assert.Equal(t, NoNode, p.boxes[rows[0]].Parent())
	assert.Equal(t, 5.0, p.boxes[table].BoundingRect().Top())
}

func TestDeleteEmptyColumnsTrailing(t *testing.T) {
	p := newTestPage(4)
	table := buildTable(t, p, []float64{0, 20, 40}, []float64{0, 50, 100, 103})

	for i, r := range []model.Rect{
		model.NewRect(5, 5, 40, 15),
		model.NewRect(55, 5, 90, 15),
		model.NewRect(5, 25, 40, 35),
		model.NewRect(55, 25, 90, 35),
	} {
		b := addBlock(t, p, "v", []int{i}, r)
		require.True(t, p.AddToTable(table, b))
	}

	p.DeleteEmptyColumns(table)

	for _, row := range p.ChildrenOf(table) {
		cells := p.ChildrenOf(row)
		require.Len(t, cells, 2)
		assert.Equal(t, 1, p.cell(cells[0]).ColumnSpan)
		assert.Equal(t, 2, p.cell(cells[1]).ColumnSpan)
	}
	tb, _ := p.Table(table)
	assert.Equal(t, 3, tb.ColumnCount())
}

func TestDeleteEmptyColumnsLeading(t *testing.T) {
	p := newTestPage(2)
	table := buildTable(t, p, []float64{0, 20, 40}, []float64{0, 2, 100})

	for i, r := range []model.Rect{
		model.NewRect(10, 5, 40, 15),
		model.NewRect(10, 25, 40, 35),
	} {
		b := addBlock(t, p, "v", []int{i}, r)
		require.True(t, p.AddToTable(table, b))
	}

	p.DeleteEmptyColumns(table)

	for _, row := range p.ChildrenOf(table) {
		cells := p.ChildrenOf(row)
		require.Len(t, cells, 1)
		assert.Equal(t, 1, p.cell(cells[0]).ColumnSpan)
	}
}

func TestDeleteEmptyColumnsInfersSpans(t *testing.T) {
	p := newTestPage(3)
	table := p.NewTable()

	// first row has a merged cell over the last two columns
	row0 := p.NewTableRow()
	for _, r := range []model.Rect{model.NewRect(0, 0, 50, 20), model.NewRect(50, 0, 150, 20)} {
		require.NoError(t, p.Add(row0, p.NewTableCell(r)))
	}
	row1 := p.NewTableRow()
	for _, r := range []model.Rect{model.NewRect(0, 20, 50, 40), model.NewRect(50, 20, 100, 40), model.NewRect(100, 20, 150, 40)} {
		require.NoError(t, p.Add(row1, p.NewTableCell(r)))
	}
	require.NoError(t, p.Add(table, row0))
	require.NoError(t, p.Add(table, row1))

	for i, r := range []model.Rect{
		model.NewRect(5, 5, 40, 15),
		model.NewRect(60, 5, 140, 15),
		model.NewRect(105, 25, 140, 35),
	} {
		b := addBlock(t, p, "v", []int{i}, r)
		require.True(t, p.AddToTable(table, b))
	}

	p.DeleteEmptyColumns(table)

	assert.Len(t, p.ChildrenOf(row0), 2)
	assert.Len(t, p.ChildrenOf(row1), 3)
	assert.Equal(t, 2, p.cell(p.ChildrenOf(row0)[1]).ColumnSpan)
	tb, _ := p.Table(table)
	assert.Equal(t, 3, tb.ColumnCount())
}

func TestDeleteEmptyColumnsKeepsGridSpans(t *testing.T) {
	p := newTestPage(3)
	table := p.NewTable()

	row0 := p.NewTableRow()
	merged := p.NewTableCell(model.NewRect(0, 0, 200, 20))
	p.cell(merged).ColumnSpan = 2
	require.NoError(t, p.Add(row0, merged))
	row1 := p.NewTableRow()
	for _, r := range []model.Rect{model.NewRect(0, 20, 100, 40), model.NewRect(100, 20, 200, 40)} {
		require.NoError(t, p.Add(row1, p.NewTableCell(r)))
	}
	require.NoError(t, p.Add(table, row0))
	require.NoError(t, p.Add(table, row1))

	for i, r := range []model.Rect{
		model.NewRect(60, 5, 140, 15),
		model.NewRect(5, 25, 40, 35),
		model.NewRect(105, 25, 140, 35),
	} {
		b := addBlock(t, p, "v", []int{i}, r)
		require.True(t, p.AddToTable(table, b))
	}

	tb, _ := p.Table(table)
	require.Equal(t, 2, tb.ColumnCount())

	p.DeleteEmptyColumns(table)

	assert.Equal(t, 2, p.cell(merged).ColumnSpan)
	for _, id := range p.ChildrenOf(row1) {
		assert.Equal(t, 1, p.cell(id).ColumnSpan)
	}
	assert.Equal(t, 2, tb.ColumnCount())
}

func TestTableCellProperties(t *testing.T) {
	p := newTestPage(0)
	table := buildTable(t, p, []float64{0, 20}, []float64{0, 50})
	tb, _ := p.Table(table)
	tb.BorderThickness = 1.5
	cell := cellAt(p, table, 0, 0)
	p.cell(cell).ColumnSpan = 3

	props, err := p.Properties(cell)
	require.NoError(t, err)
	assert.Equal(t, 3, props.ColumnSpan)
	assert.Equal(t, 1.5, props.BorderThickness)

	assert.True(t, p.IsEmpty(table))
	assert.Equal(t, 1, p.RowCount(table))
	assert.Equal(t, 1, p.CellCount(table))
}
