package model

// FixedDocument is an ordered collection of fixed pages
type FixedDocument struct {
	Title string       `json:"title,omitempty"`
	Pages []*FixedPage `json:"pages"`
}

// NewFixedDocument creates a new empty document
func NewFixedDocument() *FixedDocument {
	return &FixedDocument{
		Pages: make([]*FixedPage, 0),
	}
}

// AddPage appends a page and assigns its index
func (d *FixedDocument) AddPage(page *FixedPage) {
	if page != nil {
		page.Index = len(d.Pages)
	}
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by index (0-based). A nil page is a page that has
// not been loaded.
func (d *FixedDocument) GetPage(index int) *FixedPage {
	if index < 0 || index >= len(d.Pages) {
		return nil
	}
	return d.Pages[index]
}

// PageCount returns the total number of pages
func (d *FixedDocument) PageCount() int {
	return len(d.Pages)
}
