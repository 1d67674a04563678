package flowdoc

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/som"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
)

var tags = map[Kind]atom.Atom{
	KindSection:       atom.Section,
	KindParagraph:     atom.P,
	KindTable:         atom.Table,
	KindTableRowGroup: atom.Tbody,
	KindTableRow:      atom.Tr,
	KindTableCell:     atom.Td,
	KindList:          atom.Ul,
	KindListItem:      atom.Li,
	KindFigure:        atom.Figure,
	KindHyperlink:     atom.A,
	KindImage:         atom.Img,
	KindPlaceholder:   atom.Div,
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// HTML returns the document as an html.Node tree rooted at the document
// node
func (d *Document) HTML() *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlNode := element(atom.Html)
	root.AppendChild(htmlNode)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	if d.Title != "" {
		title := element(atom.Title)
		title.AppendChild(&html.Node{Type: html.TextNode, Data: d.Title})
		head.AppendChild(title)
	}
	htmlNode.AppendChild(head)

	body := element(atom.Body)
	for _, b := range d.Blocks {
		body.AppendChild(b.html())
	}
	htmlNode.AppendChild(body)
	return root
}

// RenderHTML writes the document as HTML
func (d *Document) RenderHTML(w io.Writer) error {
	if err := html.Render(w, d.HTML()); err != nil {
		return errors.Wrap(err, "rendering html")
	}
	return nil
}

func (e *Element) html() *html.Node {
	if e.Kind == KindRun {
		return &html.Node{Type: html.TextNode, Data: e.Text}
	}

	n := element(tags[e.Kind], e.attributes()...)
	for _, c := range e.Children {
		n.AppendChild(c.html())
	}
	return n
}

// attributes stamps the element properties as HTML attributes
func (e *Element) attributes() []html.Attribute {
	var attrs []html.Attribute

	switch e.Kind {
	case KindHyperlink:
		attrs = append(attrs, attr("href", e.NavigateURI))
	case KindImage:
		attrs = append(attrs, attr("src", e.Source), attr("alt", ""))
	case KindPlaceholder:
		attrs = append(attrs, attr("class", "page-placeholder"), attr("data-page", strconv.Itoa(e.Page)))
		return attrs
	case KindTableCell:
		if e.Properties.ColumnSpan > 1 {
			attrs = append(attrs, attr("colspan", strconv.Itoa(e.Properties.ColumnSpan)))
		}
	case KindTable:
		if e.Properties.BorderThickness > 0 {
			attrs = append(attrs, attr("style", fmt.Sprintf("border: %gpx solid", e.Properties.BorderThickness)))
		}
	}

	if e.Kind == KindRun || e.Kind == KindImage {
		return attrs
	}
	if e.Properties.FlowDirection == som.RightToLeft {
		attrs = append(attrs, attr("dir", "rtl"))
	}
	if e.Properties.Language != language.Und {
		attrs = append(attrs, attr("lang", e.Properties.Language.String()))
	}
	return attrs
}
