package flowdoc

import (
	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/flow"
)

var scopeKinds = map[flow.ElementKind]Kind{
	flow.Section:       KindSection,
	flow.Paragraph:     KindParagraph,
	flow.Table:         KindTable,
	flow.TableRowGroup: KindTableRowGroup,
	flow.TableRow:      KindTableRow,
	flow.TableCell:     KindTableCell,
	flow.List:          KindList,
	flow.ListItem:      KindListItem,
	flow.Figure:        KindFigure,
	flow.Hyperlink:     KindHyperlink,
}

type frame struct {
	scope   int
	element *Element
}

type assembler struct {
	doc   *Document
	stack []frame
}

// Assemble builds a flow document from a flow zone. Start and End nodes
// become elements carrying the properties of their scope, Run nodes
// become runs and Object nodes images. Inline content found outside a
// paragraph is wrapped in one.
func Assemble(z *flow.Zone) (*Document, error) {
	a := &assembler{doc: &Document{}}

	for _, n := range z.Nodes() {
		switch n.Type {
		case flow.Boundary, flow.Noop:
		case flow.Virtual:
			page, _ := n.PageIndex()
			a.closeImplicit()
			a.add(&Element{Kind: KindPlaceholder, Page: page})
		case flow.Start:
			scope, ok := n.Scope()
			if !ok {
				return nil, errors.Errorf("flowdoc: start node %d has no scope", n.Fp())
			}
			kind, ok := scopeKinds[scope.Kind]
			if !ok {
				return nil, errors.Errorf("flowdoc: unsupported element %s", scope.Kind)
			}
			e := &Element{
				Kind:        kind,
				NavigateURI: scope.NavigateURI,
				Properties:  scope.Properties,
				Page:        scope.Page,
			}
			if kind.IsInline() {
				a.inline(scope.Page)
			} else {
				a.closeImplicit()
			}
			a.add(e)
			a.stack = append(a.stack, frame{scope: n.ScopeID, element: e})
		case flow.End:
			a.closeImplicit()
			if len(a.stack) == 0 || a.stack[len(a.stack)-1].scope != n.ScopeID {
				return nil, errors.Errorf("flowdoc: unbalanced end of scope %d at %d", n.ScopeID, n.Fp())
			}
			a.stack = a.stack[:len(a.stack)-1]
		case flow.Run:
			elems := n.Elements()
			if len(elems) == 0 {
				continue
			}
			a.inline(-1)
			a.add(&Element{Kind: KindRun, Text: n.Text(), Page: elems[0].Node.Page()})
		case flow.Object:
			e, ok := n.Object()
			if !ok {
				return nil, errors.Errorf("flowdoc: object node %d has no element", n.Fp())
			}
			a.add(&Element{Kind: KindImage, Source: e.Source, NavigateURI: e.NavigateURI, Page: e.Node.Page()})
		default:
			return nil, errors.Errorf("flowdoc: unexpected node %s", n)
		}
	}

	a.closeImplicit()
	if len(a.stack) > 0 {
		return nil, errors.Errorf("flowdoc: %d unclosed scopes", len(a.stack))
	}
	return a.doc, nil
}

func (a *assembler) add(e *Element) {
	if len(a.stack) == 0 {
		a.doc.Blocks = append(a.doc.Blocks, e)
		return
	}
	parent := a.stack[len(a.stack)-1].element
	parent.Children = append(parent.Children, e)
}

// inline opens an implicit paragraph when the current parent cannot hold
// inline content. Implicit frames use scope id -1.
func (a *assembler) inline(page int) {
	if len(a.stack) > 0 {
		top := a.stack[len(a.stack)-1].element
		if top.Kind == KindParagraph || top.Kind.IsInline() {
			return
		}
		if page < 0 {
			page = top.Page
		}
	}
	p := &Element{Kind: KindParagraph, Page: page}
	if len(a.stack) > 0 {
		p.Properties = a.stack[len(a.stack)-1].element.Properties
	}
	a.add(p)
	a.stack = append(a.stack, frame{scope: -1, element: p})
}

func (a *assembler) closeImplicit() {
	for len(a.stack) > 0 && a.stack[len(a.stack)-1].scope == -1 {
		a.stack = a.stack[:len(a.stack)-1]
	}
}
