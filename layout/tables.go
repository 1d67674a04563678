package layout

import (
	"sort"

	"github.com/tsawler/fixedsom/som"
	"github.com/tsawler/fixedsom/tables"
	"go.uber.org/zap"
)

// buildTables creates one detached table per grid hypothesis
func (c *PageConstructor) buildTables(page *som.Page, grids []*tables.GridHypothesis) ([]som.NodeID, error) {
	ids := make([]som.NodeID, 0, len(grids))
	for _, grid := range grids {
		table := page.NewTable()
		t, _ := page.Table(table)
		t.BorderThickness = grid.LineWidth

		for _, cells := range grid.Cells {
			row := page.NewTableRow()
			for _, cell := range cells {
				id := page.NewTableCell(cell.Rect)
				tc, _ := page.TableCell(id)
				tc.ColumnSpan = cell.ColumnSpan
				if err := page.Add(row, id); err != nil {
					return nil, err
				}
			}
			if err := page.Add(table, row); err != nil {
				return nil, err
			}
		}

		c.logger.Debug("table detected",
			zap.Int("page", page.Index),
			zap.Int("rows", grid.Rows),
			zap.Int("cols", grid.Cols),
			zap.Float64("confidence", grid.Confidence))
		ids = append(ids, table)
	}
	return ids, nil
}

// routeToTables moves containers into the table cells that hold them and
// returns the containers left for the page. Smaller tables are tried first
// so that content of a nested table does not land in the outer cell; tables
// themselves are then routed into enclosing tables.
func (c *PageConstructor) routeToTables(page *som.Page, tableIDs, containers []som.NodeID) []som.NodeID {
	bySize := append([]som.NodeID(nil), tableIDs...)
	sort.SliceStable(bySize, func(i, j int) bool {
		return area(page, bySize[i]) < area(page, bySize[j])
	})

	route := func(id som.NodeID, skip som.NodeID) bool {
		for _, table := range bySize {
			if table == skip {
				continue
			}
			if page.AddToTable(table, id) {
				return true
			}
		}
		return false
	}

	var rest []som.NodeID
	for _, id := range containers {
		if !route(id, som.NoNode) {
			c.logger.Debug("container routed to page", zap.Int("page", page.Index), zap.Int("id", int(id)))
			rest = append(rest, id)
		}
	}

	for _, table := range bySize {
		if !route(table, table) {
			rest = append(rest, table)
		}
	}
	return rest
}

func area(page *som.Page, id som.NodeID) float64 {
	b, _ := page.Box(id)
	return b.BoundingRect().Area()
}

// pruneTables removes empty rows and columns from page-level tables and
// dissolves tables that are left with a single cell or no content at all.
// The content of dissolved tables is returned in place of the table.
func (c *PageConstructor) pruneTables(page *som.Page, containers []som.NodeID) ([]som.NodeID, error) {
	var out []som.NodeID
	for _, id := range containers {
		if _, ok := page.Table(id); !ok {
			out = append(out, id)
			continue
		}
		released, err := c.pruneTable(page, id)
		if err != nil {
			return nil, err
		}
		out = append(out, released...)
	}
	return out, nil
}

// pruneTable prunes one table and its nested tables. It returns the table
// itself, or the content that replaces it.
func (c *PageConstructor) pruneTable(page *som.Page, table som.NodeID) ([]som.NodeID, error) {
	for _, row := range page.ChildrenOf(table) {
		for _, cell := range page.ChildrenOf(row) {
			for _, child := range page.ChildrenOf(cell) {
				if _, ok := page.Table(child); !ok {
					continue
				}
				if err := page.Remove(cell, child); err != nil {
					return nil, err
				}
				released, err := c.pruneTable(page, child)
				if err != nil {
					return nil, err
				}
				for _, r := range released {
					if err := page.Add(cell, r); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	page.DeleteEmptyRows(table)
	page.DeleteEmptyColumns(table)

	switch {
	case page.IsEmpty(table):
		c.logger.Debug("empty table dropped", zap.Int("page", page.Index), zap.Int("id", int(table)))
		return nil, nil
	case page.CellCount(table) == 1:
		c.logger.Debug("single-cell table dissolved", zap.Int("page", page.Index), zap.Int("id", int(table)))
		cell := page.ChildrenOf(page.ChildrenOf(table)[0])[0]
		content := page.ChildrenOf(cell)
		for _, child := range content {
			if err := page.Remove(cell, child); err != nil {
				return nil, err
			}
		}
		return content, nil
	}
	return []som.NodeID{table}, nil
}
