package fixedsom

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/internal/jsonx"
	"github.com/tsawler/fixedsom/model"
)

// ReadDocument decodes a JSON fixed document. Page indices are set from
// the page order and primitives without a node become direct children of
// their page. A null page is kept as a page that is not loaded.
func ReadDocument(r io.Reader) (*model.FixedDocument, error) {
	var doc model.FixedDocument
	if err := jsonx.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding fixed document")
	}

	for i, page := range doc.Pages {
		if page == nil {
			continue
		}
		page.Index = i
		for j := range page.Primitives {
			if page.Primitives[j].Node.IsZero() {
				page.Primitives[j].Node = model.NewFixedNode(i, j)
			}
		}
	}
	return &doc, nil
}

// ReadDocumentFile decodes a JSON fixed document from a file
func ReadDocumentFile(path string) (*model.FixedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening fixed document")
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return doc, nil
}

// WriteDocument encodes a fixed document as indented JSON
func WriteDocument(w io.Writer, doc *model.FixedDocument) error {
	data, err := jsonx.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding fixed document")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "writing fixed document")
	}
	return nil
}
