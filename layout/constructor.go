package layout

import (
	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/ruling"
	"github.com/tsawler/fixedsom/som"
	"github.com/tsawler/fixedsom/tables"
	"github.com/tsawler/fixedsom/text"
	"go.uber.org/zap"
)

// PageConstructor reconstructs the semantic object model of a fixed page
type PageConstructor struct {
	config  Config
	logger  *zap.Logger
	rulings *ruling.Extractor
	grids   *tables.GridDetector
	lines   *LineDetector
	blocks  *BlockDetector
	columns *ColumnDetector
}

// NewPageConstructor creates a page constructor with default configuration
func NewPageConstructor() *PageConstructor {
	return NewPageConstructorWithConfig(DefaultConfig())
}

// NewPageConstructorWithConfig creates a page constructor with custom
// configuration
func NewPageConstructorWithConfig(config Config) *PageConstructor {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageConstructor{
		config:  config,
		logger:  logger,
		rulings: ruling.NewExtractor(),
		grids:   tables.NewGridDetector(),
		lines:   NewLineDetectorWithConfig(config.Line),
		blocks:  NewBlockDetectorWithConfig(config.Block),
		columns: NewColumnDetectorWithConfig(config.Column),
	}
}

// Construct builds the semantic page for a fixed page:
//
//  1. ruling lines are indexed
//  2. glyph runs and images become elements
//  3. text elements are grouped into lines and lines into blocks
//  4. every image becomes a block of its own
//  5. ruled grids become tables and blocks are routed into their cells
//  6. empty rows and columns are pruned, single-cell tables dissolved
//  7. side-by-side content is grouped into columns
//  8. everything is sorted into reading order
func (c *PageConstructor) Construct(fp *model.FixedPage) (*som.Page, error) {
	page := som.NewPage(fp)
	if fp == nil {
		return page, nil
	}

	// Step 1: ruling lines
	rulings := c.rulings.Extract(fp)
	for _, l := range rulings.Lines {
		switch {
		case l.IsHorizontal:
			page.Lines().AddHorizontal((l.Start.Y+l.End.Y)/2, l.Start.X, l.End.X)
		case l.IsVertical:
			page.Lines().AddVertical((l.Start.X+l.End.X)/2, l.Start.Y, l.End.Y)
		}
	}

	// Step 2: elements
	textElems, imageElems := c.createElements(page, fp)

	// Step 3: text blocks
	lines := c.lines.Detect(page, textElems)
	containers, err := c.blocks.Detect(page, lines)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d", fp.Index)
	}

	// Step 4: image blocks
	for _, id := range imageElems {
		block := page.NewFixedBlock()
		if err := page.Add(block, id); err != nil {
			return nil, errors.Wrapf(err, "page %d", fp.Index)
		}
		containers = append(containers, block)
	}

	// Steps 5 and 6: tables
	if c.config.DetectTables {
		result := c.grids.DetectGrids(rulings)
		tableIDs, err := c.buildTables(page, result.Hypotheses)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", fp.Index)
		}
		containers = c.routeToTables(page, tableIDs, containers)
		if containers, err = c.pruneTables(page, containers); err != nil {
			return nil, errors.Wrapf(err, "page %d", fp.Index)
		}
	}

	// Step 7: columns
	if c.config.DetectColumns {
		containers = c.groupColumns(page, containers)
	}

	// Step 8: reading order
	for _, id := range containers {
		c.addSorted(page, page.Root(), id)
	}
	if err := page.SortTree(page.Root()); err != nil {
		c.logger.Debug("reading order incomplete", zap.Int("page", fp.Index), zap.Error(err))
	}

	return page, nil
}

// createElements wraps glyph runs and images into elements. Runs that
// render only whitespace carry no content and are skipped.
func (c *PageConstructor) createElements(page *som.Page, fp *model.FixedPage) (textElems, imageElems []som.NodeID) {
	for i := range fp.Primitives {
		prim := &fp.Primitives[i]
		switch prim.Kind {
		case model.PrimitiveGlyphs:
			if text.IsWhiteSpace(prim.Text) {
				continue
			}
			n := len([]rune(prim.Text))
			textElems = append(textElems, page.Register(som.NewTextElement(prim, 0, n)))
		case model.PrimitiveImage:
			imageElems = append(imageElems, page.Register(som.NewImageElement(prim)))
		}
	}
	return textElems, imageElems
}

// groupColumns wraps the members of each detected column into a Group.
// Content spanning several columns stays at page level.
func (c *PageConstructor) groupColumns(page *som.Page, containers []som.NodeID) []som.NodeID {
	columns := c.columns.Detect(page, containers)
	if columns == nil {
		return containers
	}

	grouped := make(map[som.NodeID]bool)
	var out []som.NodeID
	for _, col := range columns {
		group := page.NewGroup()
		for _, id := range col.Members {
			c.addSorted(page, group, id)
			grouped[id] = true
		}
		out = append(out, group)
	}
	c.logger.Debug("columns detected", zap.Int("page", page.Index), zap.Int("columns", len(columns)))

	for _, id := range containers {
		if !grouped[id] {
			out = append(out, id)
		}
	}
	return out
}

// addSorted inserts in reading order, falling back to appending when the
// comparator cannot decide
func (c *PageConstructor) addSorted(page *som.Page, parent, child som.NodeID) {
	err := page.AddSorted(parent, child)
	if err == nil {
		return
	}
	var cmpErr *som.InvalidComparisonError
	if errors.As(err, &cmpErr) {
		c.logger.Debug("appending unordered container", zap.Int("page", page.Index), zap.Error(err))
		if err := page.Add(parent, child); err == nil {
			return
		}
	}
	c.logger.Warn("container dropped", zap.Int("page", page.Index), zap.Int("id", int(child)), zap.Error(err))
}
