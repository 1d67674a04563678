package som

import (
	"github.com/tsawler/fixedsom/model"
)

// NodeID identifies a box inside the arena of one Page
type NodeID int

// NoNode is the id of a missing box (no parent, failed lookup)
const NoNode NodeID = -1

// Kind identifies the variant of a Box
type Kind int

const (
	KindElement Kind = iota
	KindFixedBlock
	KindGroup
	KindTable
	KindTableRow
	KindTableCell
	KindPage
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindFixedBlock:
		return "FixedBlock"
	case KindGroup:
		return "Group"
	case KindTable:
		return "Table"
	case KindTableRow:
		return "TableRow"
	case KindTableCell:
		return "TableCell"
	case KindPage:
		return "Page"
	default:
		return "Unknown"
	}
}

// Box is one node of the semantic object model. The set of variants is
// closed: *Element, *FixedBlock, *Group, *Table, *TableRow, *TableCell and
// *Page.
type Box interface {
	// ID returns the arena id of the box
	ID() NodeID
	// Kind returns the variant
	Kind() Kind
	// BoundingRect returns the page-space bounds
	BoundingRect() model.Rect
	// Parent returns the owning container, or NoNode
	Parent() NodeID

	base() *box
}

type box struct {
	id     NodeID
	parent NodeID
	rect   model.Rect
}

func newBox(rect model.Rect) box {
	return box{id: NoNode, parent: NoNode, rect: rect}
}

func (b *box) ID() NodeID               { return b.id }
func (b *box) Parent() NodeID           { return b.parent }
func (b *box) BoundingRect() model.Rect { return b.rect }
func (b *box) base() *box               { return b }

// container is the shared state of every composite box
type container struct {
	box
	children []NodeID

	// seed is the extent the container has without any children
	seed model.Rect
}

func newContainer(seed model.Rect) container {
	return container{box: newBox(seed), seed: seed}
}

// Children returns a copy of the child ids in order
func (c *container) Children() []NodeID {
	out := make([]NodeID, len(c.children))
	copy(out, c.children)
	return out
}

// Len returns the number of children
func (c *container) Len() int {
	return len(c.children)
}

// Child returns the i-th child id
func (c *container) Child(i int) NodeID {
	return c.children[i]
}

func (c *container) cont() *container { return c }

// composite is implemented by every container variant
type composite interface {
	Box
	cont() *container
}

func (c *container) indexOf(id NodeID) int {
	for i, child := range c.children {
		if child == id {
			return i
		}
	}
	return -1
}

func (c *container) insertAt(i int, id NodeID) {
	c.children = append(c.children, NoNode)
	copy(c.children[i+1:], c.children[i:])
	c.children[i] = id
}

func (c *container) removeAt(i int) {
	c.children = append(c.children[:i], c.children[i+1:]...)
}
