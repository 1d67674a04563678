package flow

import (
	"fmt"
	"strings"

	"github.com/tsawler/fixedsom/som"
)

// Type identifies the role of a flow node
type Type int

const (
	// Boundary frames the whole flow; exactly one opens and one closes it
	Boundary Type = iota
	// Start opens a flow element scope (paragraph, table, cell, ...)
	Start
	// End closes the scope opened by the Start node with the same ScopeID
	End
	// Object is an embedded non-text item such as an image
	Object
	// Virtual stands in for a page whose content is not loaded
	Virtual
	// Noop marks a loaded page that produced no content
	Noop
	// Run is a sequence of text elements
	Run
)

var typeNames = [...]string{"Boundary", "Start", "End", "Object", "Virtual", "Noop", "Run"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// ElementKind is the flow element a Start/End pair stands for
type ElementKind int

const (
	Section ElementKind = iota
	Paragraph
	Table
	TableRowGroup
	TableRow
	TableCell
	List
	ListItem
	Figure
	Hyperlink
)

var elementKindNames = [...]string{
	"Section", "Paragraph", "Table", "TableRowGroup", "TableRow",
	"TableCell", "List", "ListItem", "Figure", "Hyperlink",
}

func (k ElementKind) String() string {
	if k < 0 || int(k) >= len(elementKindNames) {
		return "Unknown"
	}
	return elementKindNames[k]
}

// IsBlock reports whether the element is block level. Runs found directly
// under a block that is not a paragraph need a paragraph around them.
func (k ElementKind) IsBlock() bool {
	return k != Paragraph && k != Hyperlink
}

// Scope is the payload shared by a Start node and its End node
type Scope struct {
	Kind       ElementKind
	Properties som.Properties

	// NavigateURI is the target of a Hyperlink scope
	NavigateURI string

	// Page is the page the scope was built from
	Page int
}

// Node is one entry of the flow. Nodes are totally ordered by their flow
// position; only a Zone assigns or changes positions.
type Node struct {
	ScopeID int
	Type    Type
	Payload any

	fp int
}

func newNode(typ Type, scope int, payload any) *Node {
	return &Node{ScopeID: scope, Type: typ, Payload: payload, fp: -1}
}

// Fp returns the flow position of the node
func (n *Node) Fp() int {
	return n.fp
}

func (n *Node) setFp(fp int) {
	n.fp = fp
}

func (n *Node) increaseFp() {
	n.fp++
}

func (n *Node) decreaseFp() {
	n.fp--
}

// Compare orders two nodes by flow position
func (n *Node) Compare(other *Node) int {
	if n == other {
		return 0
	}
	switch {
	case n.fp < other.fp:
		return -1
	case n.fp > other.fp:
		return 1
	}
	return 0
}

// Equal reports whether both nodes hold the same flow position. Distinct
// nodes never do inside a valid zone.
func (n *Node) Equal(other *Node) bool {
	return other != nil && n.fp == other.fp
}

// Scope returns the scope payload of a Start or End node
func (n *Node) Scope() (*Scope, bool) {
	s, ok := n.Payload.(*Scope)
	return s, ok
}

// Elements returns the text elements of a Run node
func (n *Node) Elements() []*som.Element {
	elems, _ := n.Payload.([]*som.Element)
	return elems
}

// Object returns the element embedded by an Object node
func (n *Node) Object() (*som.Element, bool) {
	e, ok := n.Payload.(*som.Element)
	return e, ok
}

// PageIndex returns the page of a Virtual or Noop node
func (n *Node) PageIndex() (int, bool) {
	i, ok := n.Payload.(int)
	return i, ok
}

// Text returns the concatenated text of a Run node
func (n *Node) Text() string {
	var sb strings.Builder
	for _, e := range n.Elements() {
		sb.WriteString(e.Text)
	}
	return sb.String()
}

func (n *Node) String() string {
	switch n.Type {
	case Start, End:
		if s, ok := n.Scope(); ok {
			return fmt.Sprintf("%d:%s(%s#%d)", n.fp, n.Type, s.Kind, n.ScopeID)
		}
	case Run:
		return fmt.Sprintf("%d:Run(%q)", n.fp, n.Text())
	case Virtual, Noop:
		if i, ok := n.PageIndex(); ok {
			return fmt.Sprintf("%d:%s(page %d)", n.fp, n.Type, i)
		}
	}
	return fmt.Sprintf("%d:%s", n.fp, n.Type)
}
