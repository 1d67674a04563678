package som

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/text"
	"golang.org/x/text/language"
)

// Page is the root of a reconstructed page and the arena that owns every
// box of it. Boxes refer to each other by NodeID only; all structural
// mutation goes through Page methods.
type Page struct {
	container

	Index    int
	Width    float64
	Height   float64
	Language language.Tag

	boxes       []Box
	markup      []model.FixedNode
	markupIndex map[string]int
	byNode      map[string][]NodeID
	lines       *LineCollection
}

// Kind implements Box
func (p *Page) Kind() Kind { return KindPage }

// NewPage creates an empty semantic page for a fixed page. The markup order
// and culture are taken from the fixed page.
func NewPage(fp *model.FixedPage) *Page {
	p := &Page{
		container:   newContainer(model.EmptyRect()),
		Language:    language.Und,
		markupIndex: make(map[string]int),
		byNode:      make(map[string][]NodeID),
		lines:       NewLineCollection(),
	}
	p.id = 0
	p.boxes = append(p.boxes, p)

	if fp != nil {
		p.Index = fp.Index
		p.Width = fp.Width
		p.Height = fp.Height
		p.Language = fp.Language
		p.markup = fp.MarkupOrder()
		for i, node := range p.markup {
			p.markupIndex[node.Key()] = i
		}
	}
	return p
}

// Root returns the id of the page itself
func (p *Page) Root() NodeID {
	return p.id
}

// Lines returns the ruling line index of the page
func (p *Page) Lines() *LineCollection {
	return p.lines
}

// MarkupOrder returns the rendering order of the page primitives
func (p *Page) MarkupOrder() []model.FixedNode {
	return p.markup
}

// MarkupIndex returns the rendering position of a node, or -1
func (p *Page) MarkupIndex(node model.FixedNode) int {
	if i, ok := p.markupIndex[node.Key()]; ok {
		return i
	}
	return -1
}

// PageRect returns the full page area
func (p *Page) PageRect() model.Rect {
	return model.NewRect(0, 0, p.Width, p.Height)
}

// Size returns the number of boxes in the arena, page included
func (p *Page) Size() int {
	return len(p.boxes)
}

// Box returns the box with the given id
func (p *Page) Box(id NodeID) (Box, bool) {
	if id < 0 || int(id) >= len(p.boxes) {
		return nil, false
	}
	return p.boxes[id], true
}

func lookup[T Box](p *Page, id NodeID) (T, bool) {
	var zero T
	b, ok := p.Box(id)
	if !ok {
		return zero, false
	}
	t, ok := b.(T)
	return t, ok
}

// Element returns the element with the given id
func (p *Page) Element(id NodeID) (*Element, bool) { return lookup[*Element](p, id) }

// FixedBlock returns the block with the given id
func (p *Page) FixedBlock(id NodeID) (*FixedBlock, bool) { return lookup[*FixedBlock](p, id) }

// Group returns the group with the given id
func (p *Page) Group(id NodeID) (*Group, bool) { return lookup[*Group](p, id) }

// Table returns the table with the given id
func (p *Page) Table(id NodeID) (*Table, bool) { return lookup[*Table](p, id) }

// TableRow returns the row with the given id
func (p *Page) TableRow(id NodeID) (*TableRow, bool) { return lookup[*TableRow](p, id) }

// TableCell returns the cell with the given id
func (p *Page) TableCell(id NodeID) (*TableCell, bool) { return lookup[*TableCell](p, id) }

// ChildrenOf returns the children of a container, or nil for leaves and
// unknown ids
func (p *Page) ChildrenOf(id NodeID) []NodeID {
	c, ok := lookup[composite](p, id)
	if !ok {
		return nil
	}
	return c.cont().Children()
}

func (p *Page) register(b Box) NodeID {
	id := NodeID(len(p.boxes))
	b.base().id = id
	p.boxes = append(p.boxes, b)
	return id
}

// Register places a detached element into the arena
func (p *Page) Register(e *Element) NodeID {
	id := p.register(e)
	key := e.Node.Key()
	p.byNode[key] = append(p.byNode[key], id)
	return id
}

// ElementsFor returns the elements created from a primitive, in creation
// order
func (p *Page) ElementsFor(node model.FixedNode) []NodeID {
	return p.byNode[node.Key()]
}

// NewFixedBlock creates an empty detached block
func (p *Page) NewFixedBlock() NodeID {
	return p.register(&FixedBlock{container: newContainer(model.EmptyRect())})
}

// NewGroup creates an empty detached group
func (p *Page) NewGroup() NodeID {
	return p.register(&Group{container: newContainer(model.EmptyRect())})
}

// NewTable creates an empty detached table
func (p *Page) NewTable() NodeID {
	return p.register(&Table{container: newContainer(model.EmptyRect())})
}

// NewTableRow creates an empty detached row
func (p *Page) NewTableRow() NodeID {
	return p.register(&TableRow{container: newContainer(model.EmptyRect())})
}

// NewTableCell creates an empty detached cell covering bounds
func (p *Page) NewTableCell(bounds model.Rect) NodeID {
	return p.register(&TableCell{container: newContainer(bounds), ColumnSpan: 1})
}

func accepts(parent, child Kind) bool {
	switch parent {
	case KindFixedBlock:
		return child == KindElement
	case KindGroup, KindTableCell:
		return child == KindFixedBlock || child == KindTable
	case KindTable:
		return child == KindTableRow
	case KindTableRow:
		return child == KindTableCell
	case KindPage:
		return child == KindFixedBlock || child == KindGroup || child == KindTable
	default:
		return false
	}
}

// attachable resolves parent and child for an insertion
func (p *Page) attachable(parent, child NodeID) (composite, Box, error) {
	pb, ok := lookup[composite](p, parent)
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownNode, "parent %d", parent)
	}
	cb, ok := p.Box(child)
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownNode, "child %d", child)
	}
	if cb.Parent() != NoNode {
		return nil, nil, errors.Wrapf(ErrAlreadyOwned, "child %d owned by %d", child, cb.Parent())
	}
	if !accepts(pb.Kind(), cb.Kind()) {
		return nil, nil, errors.Wrapf(ErrInvalidChild, "%s cannot hold %s", pb.Kind(), cb.Kind())
	}
	return pb, cb, nil
}

// Add appends child to the children of parent
func (p *Page) Add(parent, child NodeID) error {
	pb, cb, err := p.attachable(parent, child)
	if err != nil {
		return err
	}
	p.attach(pb, cb, pb.cont().Len())
	return nil
}

// AddSorted inserts child among the children of parent in reading order
func (p *Page) AddSorted(parent, child NodeID) error {
	pb, cb, err := p.attachable(parent, child)
	if err != nil {
		return err
	}

	children := pb.cont().children
	var cmpErr error
	pos := sort.Search(len(children), func(i int) bool {
		c, err := p.compareIn(pb, child, children[i])
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return c < 0
	})
	if cmpErr != nil {
		return cmpErr
	}

	p.attach(pb, cb, pos)
	return nil
}

func (p *Page) attach(parent composite, child Box, pos int) {
	parent.cont().insertAt(pos, child.ID())
	child.base().parent = parent.ID()
	p.count(parent, child)
	p.grow(parent, child.BoundingRect())
}

// count updates the per-container statistics for a new child
func (p *Page) count(parent composite, child Box) {
	switch pc := parent.(type) {
	case *FixedBlock:
		pc.count(child.(*Element))
	case *Group:
		if b, ok := child.(*FixedBlock); ok {
			pc.count(b)
		}
	case *Table:
		pc.columnCount = max(pc.columnCount, p.rowWidth(child.ID()))
	case *TableRow:
		if t, ok := p.Table(pc.parent); ok {
			t.columnCount = max(t.columnCount, p.rowWidth(pc.id))
		}
	}
}

// rowWidth is the number of grid columns a row covers
func (p *Page) rowWidth(row NodeID) int {
	width := 0
	for _, id := range p.ChildrenOf(row) {
		if c, ok := p.TableCell(id); ok {
			width += c.ColumnSpan
		}
	}
	return width
}

// grow unions r into a container and its ancestors
func (p *Page) grow(c composite, r model.Rect) {
	for {
		b := c.base()
		b.rect = b.rect.Union(r)
		next, ok := lookup[composite](p, b.parent)
		if !ok {
			return
		}
		c = next
	}
}

// Remove detaches child from parent and recomputes the parent's bounds and
// statistics. The child stays in the arena and may be added elsewhere.
func (p *Page) Remove(parent, child NodeID) error {
	pb, ok := lookup[composite](p, parent)
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "parent %d", parent)
	}
	idx := pb.cont().indexOf(child)
	if idx < 0 {
		return errors.Wrapf(ErrUnknownNode, "%d is not a child of %d", child, parent)
	}
	pb.cont().removeAt(idx)
	p.boxes[child].base().parent = NoNode
	p.recount(pb)
	p.InvalidateBounds(parent)
	return nil
}

// recount rebuilds the statistics of a container from its children
func (p *Page) recount(c composite) {
	switch pc := c.(type) {
	case *FixedBlock:
		pc.reset()
	case *Group:
		pc.vote = text.Vote{}
	case *Table:
		pc.columnCount = 0
	}
	for _, id := range c.cont().children {
		p.count(c, p.boxes[id])
	}
}

// InvalidateBounds recomputes the bounds of a container from its current
// children and propagates the change to every ancestor.
func (p *Page) InvalidateBounds(id NodeID) {
	c, ok := lookup[composite](p, id)
	for ok {
		cont := c.cont()
		r := cont.seed
		for _, child := range cont.children {
			r = r.Union(p.boxes[child].BoundingRect())
		}
		cont.rect = r
		c, ok = lookup[composite](p, cont.parent)
	}
}

// CombineBlocks moves every element of src to the end of dst. The element
// ids are preserved; src is left empty and detached from its parent.
func (p *Page) CombineBlocks(dst, src NodeID) error {
	if dst == src {
		return errors.Wrapf(ErrInvalidChild, "cannot combine block %d with itself", dst)
	}
	d, ok := p.FixedBlock(dst)
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "block %d", dst)
	}
	s, ok := p.FixedBlock(src)
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "block %d", src)
	}

	for _, id := range s.children {
		e := p.boxes[id]
		e.base().parent = NoNode
		p.attach(d, e, len(d.children))
	}
	s.children = nil
	s.reset()
	s.rect = s.seed

	if s.parent != NoNode {
		return p.Remove(s.parent, src)
	}
	return nil
}

// Walk visits the subtree rooted at id in pre-order with its depth. The
// walk stops early when fn returns false.
func (p *Page) Walk(id NodeID, fn func(b Box, depth int) bool) {
	p.walk(id, 0, fn)
}

func (p *Page) walk(id NodeID, depth int, fn func(b Box, depth int) bool) bool {
	b, ok := p.Box(id)
	if !ok {
		return true
	}
	if !fn(b, depth) {
		return false
	}
	if c, ok := b.(composite); ok {
		for _, child := range c.cont().children {
			if !p.walk(child, depth+1, fn) {
				return false
			}
		}
	}
	return true
}

// markupSpan returns the smallest and largest markup index of the elements
// under id, or -1, -1 when none of them is in the markup order.
func (p *Page) markupSpan(id NodeID) (first, last int) {
	first, last = math.MaxInt, -1
	p.Walk(id, func(b Box, _ int) bool {
		if e, ok := b.(*Element); ok {
			if i := p.MarkupIndex(e.Node); i >= 0 {
				first = min(first, i)
				last = max(last, i)
			}
		}
		return true
	})
	if last < 0 {
		return -1, -1
	}
	return first, last
}

// isRTL reports the majority direction of a direction-carrying box
func (p *Page) isRTL(id NodeID) bool {
	switch b := p.boxes[id].(type) {
	case *Element:
		return b.IsRTL()
	case *FixedBlock:
		return b.IsRTL()
	case *Group:
		return b.IsRTL()
	case *Table:
		return b.IsRTL()
	}
	return false
}
