package flow

import (
	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
	"github.com/tsawler/fixedsom/text"
	"go.uber.org/zap"
)

// ErrFinished is returned when adding to a builder after Finish
var ErrFinished = errors.New("flow: builder already finished")

// Builder assembles the flow of a document page by page. The flow opens
// and closes with a Boundary node; every page contributes a Section scope,
// a Noop node when it has no content, or a Virtual node when it was not
// loaded.
type Builder struct {
	zone     *Zone
	logger   *zap.Logger
	finished bool
}

// NewBuilder creates a builder. A nil logger disables logging.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	zone := NewZone()
	zone.Append(Boundary, 0, nil)
	return &Builder{zone: zone, logger: logger.Named("flow")}
}

// AddPage appends the flow of a reconstructed page, walking its tree in
// reading order
func (b *Builder) AddPage(page *som.Page) error {
	if b.finished {
		return ErrFinished
	}
	if page == nil {
		return errors.New("flow: nil page")
	}
	if len(page.ChildrenOf(page.Root())) == 0 {
		b.zone.Append(Noop, 0, page.Index)
		return nil
	}

	w := &somWriter{zone: b.zone, page: page}
	if err := w.scope(Section, page.Root(), "", func() error {
		for _, id := range page.ChildrenOf(page.Root()) {
			if err := w.box(id); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return errors.Wrapf(err, "flow of page %d", page.Index)
	}
	return nil
}

// AddStructuredPage appends the flow of a fixed page driven by its
// document-structure hints. Content the hints do not reach follows in
// markup order.
func (b *Builder) AddStructuredPage(fp *model.FixedPage, names *NameTable) error {
	if b.finished {
		return ErrFinished
	}
	if fp == nil {
		return errors.New("flow: nil page")
	}
	if !hasContent(fp) {
		b.zone.Append(Noop, 0, fp.Index)
		return nil
	}
	if names == nil {
		names = NewNameTable(fp)
	}
	return NewDSBuilder(fp, names, b.logger).Build(b.zone)
}

// AddVirtualPage appends a placeholder for a page that is not loaded
func (b *Builder) AddVirtualPage(index int) error {
	if b.finished {
		return ErrFinished
	}
	b.zone.Append(Virtual, 0, index)
	return nil
}

// Finish closes the flow and validates it
func (b *Builder) Finish() (*Zone, error) {
	if b.finished {
		return nil, ErrFinished
	}
	b.finished = true
	b.zone.Append(Boundary, 0, nil)
	if err := b.zone.Validate(); err != nil {
		return nil, err
	}
	b.logger.Debug("flow built", zap.Int("nodes", b.zone.Len()))
	return b.zone, nil
}

func hasContent(fp *model.FixedPage) bool {
	for i := range fp.Primitives {
		prim := &fp.Primitives[i]
		switch prim.Kind {
		case model.PrimitiveImage:
			return true
		case model.PrimitiveGlyphs:
			if !text.IsWhiteSpace(prim.Text) {
				return true
			}
		}
	}
	return false
}

// somWriter emits the flow of one semantic page
type somWriter struct {
	zone *Zone
	page *som.Page
}

func (w *somWriter) scope(kind ElementKind, id som.NodeID, uri string, body func() error) error {
	props, err := w.page.Properties(id)
	if err != nil {
		return err
	}
	s := &Scope{Kind: kind, Properties: props, NavigateURI: uri, Page: w.page.Index}
	scope := w.zone.NewScope()
	w.zone.Append(Start, scope, s)
	if err := body(); err != nil {
		return err
	}
	w.zone.Append(End, scope, s)
	return nil
}

func (w *somWriter) children(id som.NodeID) func() error {
	return func() error {
		for _, child := range w.page.ChildrenOf(id) {
			if err := w.box(child); err != nil {
				return err
			}
		}
		return nil
	}
}

func (w *somWriter) box(id som.NodeID) error {
	b, ok := w.page.Box(id)
	if !ok {
		return errors.Wrapf(som.ErrUnknownNode, "box %d", id)
	}

	switch b := b.(type) {
	case *som.Group:
		return w.scope(Section, id, "", w.children(id))
	case *som.Table:
		return w.scope(Table, id, "", w.children(id))
	case *som.TableRow:
		return w.scope(TableRow, id, "", w.children(id))
	case *som.TableCell:
		return w.scope(TableCell, id, "", w.children(id))
	case *som.FixedBlock:
		switch {
		case b.IsWhiteSpace():
			return nil
		case b.IsFloatingImage():
			e, _ := w.page.Element(b.Child(0))
			w.zone.Append(Object, 0, e)
			return nil
		}
		return w.scope(Paragraph, id, "", func() error {
			return w.inlines(id)
		})
	}
	return errors.Errorf("flow: unexpected %s %d", b.Kind(), id)
}

// inlines emits the elements of a block. Neighbouring text elements share
// a Run; elements carrying the same link target share a Hyperlink.
func (w *somWriter) inlines(block som.NodeID) error {
	var run []*som.Element
	flush := func() {
		if len(run) > 0 {
			w.zone.Append(Run, 0, run)
			run = nil
		}
	}

	children := w.page.ChildrenOf(block)
	for i := 0; i < len(children); i++ {
		e, ok := w.page.Element(children[i])
		if !ok {
			return errors.Wrapf(som.ErrInvalidChild, "block %d", block)
		}

		if e.NavigateURI != "" {
			flush()
			first := children[i]
			link := []*som.Element{e}
			for i+1 < len(children) {
				next, _ := w.page.Element(children[i+1])
				if next.NavigateURI != e.NavigateURI {
					break
				}
				link = append(link, next)
				i++
			}
			err := w.scope(Hyperlink, first, e.NavigateURI, func() error {
				w.links(link)
				return nil
			})
			if err != nil {
				return err
			}
			continue
		}

		if e.IsImage() {
			flush()
			w.zone.Append(Object, 0, e)
			continue
		}
		run = append(run, e)
	}
	flush()
	return nil
}

func (w *somWriter) links(elems []*som.Element) {
	var run []*som.Element
	for _, e := range elems {
		if e.IsImage() {
			if len(run) > 0 {
				w.zone.Append(Run, 0, run)
				run = nil
			}
			w.zone.Append(Object, 0, e)
			continue
		}
		run = append(run, e)
	}
	if len(run) > 0 {
		w.zone.Append(Run, 0, run)
	}
}
