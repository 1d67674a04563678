// Package fixedsom reconstructs the reading structure of fixed documents.
//
// A fixed document is a list of pages of absolutely positioned glyph runs,
// images and paths. fixedsom groups them into paragraphs, tables, rows,
// cells and columns, orders everything for reading and maps the result
// onto a flat flow that a flow document is built from.
//
// Basic usage:
//
//	doc, err := fixedsom.ReadDocumentFile("document.json")
//	if err != nil {
//	    // handle error
//	}
//	zone, err := fixedsom.Open(doc).Flow(ctx)
//
// With options:
//
//	err := fixedsom.Open(doc).
//	    Pages(1, 2).
//	    Concurrency(4).
//	    Logger(logger).
//	    WithoutTables().
//	    HTML(ctx, os.Stdout)
//
// The lower-level packages (som, layout, flow, flowdoc) are available for
// finer control.
package fixedsom

import (
	"context"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/flow"
	"github.com/tsawler/fixedsom/flowdoc"
	"github.com/tsawler/fixedsom/layout"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reconstructor provides a fluent interface for reconstructing a fixed
// document. Each configuration method returns a new Reconstructor, so a
// configured chain can be reused and shared between goroutines.
type Reconstructor struct {
	doc     *model.FixedDocument
	options options

	// Accumulated error (fail-fast)
	err error
}

// Open returns a Reconstructor for a document
func Open(doc *model.FixedDocument) *Reconstructor {
	r := &Reconstructor{doc: doc, options: defaultOptions()}
	if doc == nil {
		r.err = errors.New("fixedsom: nil document")
	}
	return r
}

// Load reads a JSON document from a file and returns a Reconstructor for
// it. A read error is reported by the terminal operation.
func Load(path string) *Reconstructor {
	doc, err := ReadDocumentFile(path)
	if err != nil {
		return &Reconstructor{options: defaultOptions(), err: err}
	}
	return Open(doc)
}

// FromReader decodes a JSON document and returns a Reconstructor for it
func FromReader(r io.Reader) *Reconstructor {
	doc, err := ReadDocument(r)
	if err != nil {
		return &Reconstructor{options: defaultOptions(), err: err}
	}
	return Open(doc)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// clone creates a shallow copy with a deep copy of options
func (r *Reconstructor) clone() *Reconstructor {
	return &Reconstructor{
		doc:     r.doc,
		options: r.options.clone(),
		err:     r.err,
	}
}

// Pages selects the pages to reconstruct (1-indexed). Multiple calls are
// cumulative.
func (r *Reconstructor) Pages(pages ...int) *Reconstructor {
	next := r.clone()
	next.options.pages = append(next.options.pages, pages...)
	return next
}

// PageRange selects a range of pages (1-indexed, inclusive)
func (r *Reconstructor) PageRange(start, end int) *Reconstructor {
	next := r.clone()
	for i := start; i <= end; i++ {
		next.options.pages = append(next.options.pages, i)
	}
	return next
}

// Concurrency sets how many pages are analyzed at the same time
func (r *Reconstructor) Concurrency(n int) *Reconstructor {
	next := r.clone()
	next.options.config.Concurrency = n
	return next
}

// Logger sets the logger. Nil disables logging.
func (r *Reconstructor) Logger(l *zap.Logger) *Reconstructor {
	next := r.clone()
	if l == nil {
		l = zap.NewNop()
	}
	next.options.logger = l
	return next
}

// WithConfig replaces the whole configuration
func (r *Reconstructor) WithConfig(cfg Config) *Reconstructor {
	next := r.clone()
	next.options.config = cfg
	return next
}

// WithoutTables disables table reconstruction
func (r *Reconstructor) WithoutTables() *Reconstructor {
	next := r.clone()
	next.options.config.DetectTables = false
	return next
}

// WithoutColumns disables column grouping
func (r *Reconstructor) WithoutColumns() *Reconstructor {
	next := r.clone()
	next.options.config.DetectColumns = false
	return next
}

// IgnoreStructure builds the flow from the reconstructed pages even when a
// page carries document-structure hints
func (r *Reconstructor) IgnoreStructure() *Reconstructor {
	next := r.clone()
	next.options.config.UseStructure = false
	return next
}

// Title sets the title of the produced flow document
func (r *Reconstructor) Title(title string) *Reconstructor {
	next := r.clone()
	next.options.title = title
	return next
}

// PageCount returns the number of pages in the document
func (r *Reconstructor) PageCount() (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.doc.PageCount(), nil
}

// Reconstruct builds the semantic page of every selected page. Pages that
// are not loaded yield nil entries. Pages are analyzed concurrently up to
// the configured concurrency; the result keeps page order.
func (r *Reconstructor) Reconstruct(ctx context.Context) ([]*som.Page, error) {
	indices, err := r.prepare()
	if err != nil {
		return nil, err
	}
	return r.reconstruct(ctx, indices)
}

func (r *Reconstructor) reconstruct(ctx context.Context, indices []int) ([]*som.Page, error) {
	cfg := r.options.config
	logger := r.options.logger
	layoutCfg := cfg.layoutConfig(logger)

	results := make([]*som.Page, len(indices))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, idx := range indices {
		i, idx := i, idx
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fp := r.doc.GetPage(idx)
			if fp == nil {
				return nil
			}
			page, err := layout.NewPageConstructorWithConfig(layoutCfg).Construct(fp)
			if err != nil {
				return errors.Wrapf(err, "page %d", idx+1)
			}
			logger.Debug("page reconstructed",
				zap.Int("page", idx+1),
				zap.Int("boxes", page.Size()))
			results[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Flow builds the flow of the selected pages
func (r *Reconstructor) Flow(ctx context.Context) (*flow.Zone, error) {
	indices, err := r.prepare()
	if err != nil {
		return nil, err
	}
	pages, err := r.reconstruct(ctx, indices)
	if err != nil {
		return nil, err
	}

	b := flow.NewBuilder(r.options.logger)
	for i, idx := range indices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fp := r.doc.GetPage(idx)
		switch {
		case fp == nil:
			err = b.AddVirtualPage(idx)
		case fp.Structure != nil && r.options.config.UseStructure:
			err = b.AddStructuredPage(fp, flow.NewNameTable(fp))
		default:
			err = b.AddPage(pages[i])
		}
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", idx+1)
		}
	}
	return b.Finish()
}

// Document builds the flow document of the selected pages
func (r *Reconstructor) Document(ctx context.Context) (*flowdoc.Document, error) {
	zone, err := r.Flow(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := flowdoc.Assemble(zone)
	if err != nil {
		return nil, err
	}
	doc.Title = r.options.title
	if doc.Title == "" {
		doc.Title = r.doc.Title
	}
	return doc, nil
}

// HTML writes the flow document of the selected pages as HTML
func (r *Reconstructor) HTML(ctx context.Context, w io.Writer) error {
	doc, err := r.Document(ctx)
	if err != nil {
		return err
	}
	return doc.RenderHTML(w)
}

// Markdown returns the flow document of the selected pages as markdown
func (r *Reconstructor) Markdown(ctx context.Context) (string, error) {
	doc, err := r.Document(ctx)
	if err != nil {
		return "", err
	}
	return doc.Markdown(), nil
}

// prepare validates the configuration and resolves the page selection
func (r *Reconstructor) prepare() ([]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err := r.options.config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return r.resolvePages()
}

// resolvePages converts the 1-indexed selection to sorted, unique page
// indices
func (r *Reconstructor) resolvePages() ([]int, error) {
	pageCount := r.doc.PageCount()

	// If no pages specified, use all pages
	if len(r.options.pages) == 0 {
		indices := make([]int, pageCount)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, p := range r.options.pages {
		if p < 1 || p > pageCount {
			return nil, errors.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p-1] {
			seen[p-1] = true
			indices = append(indices, p-1)
		}
	}

	sort.Ints(indices)
	return indices, nil
}
