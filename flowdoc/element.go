package flowdoc

import (
	"strings"

	"github.com/tsawler/fixedsom/som"
)

// Kind identifies a flow document element
type Kind int

const (
	KindSection Kind = iota
	KindParagraph
	KindTable
	KindTableRowGroup
	KindTableRow
	KindTableCell
	KindList
	KindListItem
	KindFigure
	KindHyperlink
	KindRun
	KindImage
	// KindPlaceholder stands for a page that was not loaded
	KindPlaceholder
)

var kindNames = [...]string{
	"Section", "Paragraph", "Table", "TableRowGroup", "TableRow", "TableCell",
	"List", "ListItem", "Figure", "Hyperlink", "Run", "Image", "Placeholder",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// IsInline reports whether the element lives inside a paragraph
func (k Kind) IsInline() bool {
	switch k {
	case KindHyperlink, KindRun:
		return true
	}
	return false
}

// Element is one node of a flow document
type Element struct {
	Kind Kind

	// Text of a Run
	Text string

	// Source of an Image
	Source string

	// NavigateURI is the target of a Hyperlink
	NavigateURI string

	// Properties stamped from the semantic page
	Properties som.Properties

	// Page is the fixed page the element came from
	Page int

	Children []*Element
}

// PlainText returns the text below the element. Paragraphs and cells end
// with a line break.
func (e *Element) PlainText() string {
	var sb strings.Builder
	e.plainText(&sb)
	return sb.String()
}

func (e *Element) plainText(sb *strings.Builder) {
	if e.Kind == KindRun {
		sb.WriteString(e.Text)
		return
	}
	for _, c := range e.Children {
		c.plainText(sb)
	}
	switch e.Kind {
	case KindParagraph, KindTableCell, KindListItem:
		sb.WriteString("\n")
	}
}

// Walk visits the element and its descendants depth-first. Returning false
// skips the children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Document is the flow document assembled from a flow
type Document struct {
	Title  string
	Blocks []*Element
}

// PlainText returns the text of the whole document
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		b.plainText(&sb)
	}
	return sb.String()
}

// Walk visits every element of the document depth-first
func (d *Document) Walk(fn func(*Element) bool) {
	for _, b := range d.Blocks {
		b.Walk(fn)
	}
}

// Count returns the number of elements of a kind
func (d *Document) Count(kind Kind) int {
	n := 0
	d.Walk(func(e *Element) bool {
		if e.Kind == kind {
			n++
		}
		return true
	})
	return n
}
