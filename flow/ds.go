package flow

import (
	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
	"github.com/tsawler/fixedsom/text"
	"go.uber.org/zap"
)

var structureKinds = map[model.StructureKind]ElementKind{
	model.StructureSection:       Section,
	model.StructureParagraph:     Paragraph,
	model.StructureTable:         Table,
	model.StructureTableRowGroup: TableRowGroup,
	model.StructureTableRow:      TableRow,
	model.StructureTableCell:     TableCell,
	model.StructureList:          List,
	model.StructureListItem:      ListItem,
	model.StructureFigure:        Figure,
}

type openScope struct {
	id       int
	scope    *Scope
	vote     text.Vote
	implicit bool
}

// DSBuilder builds the flow of one fixed page from its document-structure
// hints. It runs in two passes:
//
//  1. the structure pass walks the hint tree, resolving named elements
//     through the NameTable and marking every resolved primitive visited
//  2. the leftover pass appends the unvisited primitives in markup order
//     as one paragraph, followed by the hyperlinks it deferred
//
// A DSBuilder is used for a single Build call.
type DSBuilder struct {
	page   *model.FixedPage
	names  *NameTable
	logger *zap.Logger

	zone     *Zone
	visited  []bool
	deferred []int
	open     []*openScope
}

// NewDSBuilder creates a structure-driven builder for a page
func NewDSBuilder(fp *model.FixedPage, names *NameTable, logger *zap.Logger) *DSBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DSBuilder{
		page:    fp,
		names:   names,
		logger:  logger,
		visited: make([]bool, len(fp.Primitives)),
	}
}

// Build appends the flow of the page to zone, framed by a Section scope
func (d *DSBuilder) Build(zone *Zone) error {
	if d.zone != nil {
		return errors.New("flow: structure builder already used")
	}
	d.zone = zone

	d.push(Section, 1, "", false)
	if d.page.Structure != nil {
		d.structure(d.page.Structure)
	}
	d.leftovers()
	d.closeImplicit()
	d.pop()
	return nil
}

// Visited reports whether the structure or leftover pass consumed the
// primitive at index i
func (d *DSBuilder) Visited(i int) bool {
	return i >= 0 && i < len(d.visited) && d.visited[i]
}

func (d *DSBuilder) structure(n *model.StructureNode) {
	switch n.Kind {
	case model.StructureNamedElement:
		indices, ok := d.names.Lookup(n.Name)
		if !ok {
			d.logger.Debug("unresolved structure name",
				zap.Int("page", d.page.Index),
				zap.String("name", n.Name))
			return
		}
		d.emit(indices, false)
		return
	case model.StructureListItem:
		if n.Marker != "" {
			d.mark(n.Marker)
		}
	}

	kind, ok := structureKinds[n.Kind]
	if !ok {
		kind = Section
	}
	span := n.ColumnSpan
	if span < 1 {
		span = 1
	}

	d.closeImplicit()
	d.push(kind, span, "", false)
	for _, c := range n.Children {
		d.structure(c)
	}
	d.closeImplicit()
	d.pop()
}

// mark consumes the primitives of a name without emitting them
func (d *DSBuilder) mark(name string) {
	indices, ok := d.names.Lookup(name)
	if !ok {
		d.logger.Debug("unresolved list marker",
			zap.Int("page", d.page.Index),
			zap.String("name", name))
		return
	}
	for _, i := range indices {
		d.visited[i] = true
	}
}

// emit writes the primitives at indices that are not yet visited. In the
// leftover pass hyperlinks are deferred and blank runs dropped.
func (d *DSBuilder) emit(indices []int, leftover bool) {
	var run []*som.Element
	flush := func() {
		if len(run) > 0 {
			d.run(run)
			run = nil
		}
	}

	for _, i := range indices {
		if d.visited[i] {
			continue
		}
		d.visited[i] = true
		prim := &d.page.Primitives[i]

		switch prim.Kind {
		case model.PrimitiveGlyphs, model.PrimitiveImage:
		default:
			continue
		}
		if prim.NavigateURI != "" {
			flush()
			if leftover {
				d.deferred = append(d.deferred, i)
				continue
			}
			d.link(prim)
			continue
		}
		if prim.Kind == model.PrimitiveImage {
			flush()
			d.zone.Append(Object, 0, som.NewImageElement(prim))
			continue
		}
		if leftover && text.IsWhiteSpace(prim.Text) {
			continue
		}
		run = append(run, som.NewTextElement(prim, 0, len([]rune(prim.Text))))
	}
	flush()
}

func (d *DSBuilder) link(prim *model.Primitive) {
	d.inline()
	d.push(Hyperlink, 1, prim.NavigateURI, false)
	if prim.Kind == model.PrimitiveImage {
		d.zone.Append(Object, 0, som.NewImageElement(prim))
	} else {
		d.run([]*som.Element{som.NewTextElement(prim, 0, len([]rune(prim.Text)))})
	}
	d.pop()
}

func (d *DSBuilder) run(elems []*som.Element) {
	d.inline()
	top := d.open[len(d.open)-1]
	for _, e := range elems {
		top.vote.Add(e.Direction)
	}
	d.zone.Append(Run, 0, elems)
}

func (d *DSBuilder) leftovers() {
	var rest []int
	content := false
	for i := range d.page.Primitives {
		if d.visited[i] {
			continue
		}
		rest = append(rest, i)
		prim := &d.page.Primitives[i]
		if prim.NavigateURI != "" {
			continue
		}
		if prim.Kind == model.PrimitiveImage ||
			(prim.Kind == model.PrimitiveGlyphs && !text.IsWhiteSpace(prim.Text)) {
			content = true
		}
	}
	if len(rest) > 0 {
		d.logger.Debug("primitives outside structure",
			zap.Int("page", d.page.Index),
			zap.Int("count", len(rest)))
	}

	d.closeImplicit()
	if content {
		d.push(Paragraph, 1, "", false)
	}
	d.emit(rest, true)
	if content {
		d.pop()
	}

	if len(d.deferred) == 0 {
		return
	}
	d.push(Paragraph, 1, "", false)
	for _, i := range d.deferred {
		d.link(&d.page.Primitives[i])
	}
	d.pop()
}

// inline opens an implicit paragraph unless inline content is allowed at
// the current position
func (d *DSBuilder) inline() {
	if len(d.open) > 0 && !d.open[len(d.open)-1].scope.Kind.IsBlock() {
		return
	}
	d.push(Paragraph, 1, "", true)
}

func (d *DSBuilder) closeImplicit() {
	for len(d.open) > 0 && d.open[len(d.open)-1].implicit {
		d.pop()
	}
}

func (d *DSBuilder) push(kind ElementKind, span int, uri string, implicit bool) {
	s := &Scope{
		Kind: kind,
		Properties: som.Properties{
			FlowDirection: som.LeftToRight,
			Language:      d.page.Language,
			ColumnSpan:    span,
		},
		NavigateURI: uri,
		Page:        d.page.Index,
	}
	id := d.zone.NewScope()
	d.zone.Append(Start, id, s)
	d.open = append(d.open, &openScope{id: id, scope: s, implicit: implicit})
}

// pop closes the innermost scope. Its direction is the majority of the
// text it holds.
func (d *DSBuilder) pop() {
	top := d.open[len(d.open)-1]
	d.open = d.open[:len(d.open)-1]
	if top.vote.IsRTL() {
		top.scope.Properties.FlowDirection = som.RightToLeft
	}
	if len(d.open) > 0 {
		d.open[len(d.open)-1].vote.Merge(top.vote)
	}
	d.zone.Append(End, top.id, top.scope)
}
