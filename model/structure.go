package model

// StructureKind identifies the role of a document-structure hint
type StructureKind int

const (
	StructureSection StructureKind = iota
	StructureParagraph
	StructureTable
	StructureTableRowGroup
	StructureTableRow
	StructureTableCell
	StructureList
	StructureListItem
	StructureFigure
	StructureNamedElement
)

var structureKindNames = map[StructureKind]string{
	StructureSection:       "Section",
	StructureParagraph:     "Paragraph",
	StructureTable:         "Table",
	StructureTableRowGroup: "TableRowGroup",
	StructureTableRow:      "TableRow",
	StructureTableCell:     "TableCell",
	StructureList:          "List",
	StructureListItem:      "ListItem",
	StructureFigure:        "Figure",
	StructureNamedElement:  "NamedElement",
}

func (k StructureKind) String() string {
	if s, ok := structureKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler
func (k StructureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *StructureKind) UnmarshalText(b []byte) error {
	for kind, name := range structureKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	*k = StructureSection
	return nil
}

// StructureNode is one node of a document-structure hint tree. Named
// elements reference page primitives or canvases by markup name; the other
// kinds describe the semantic containers wrapped around them.
type StructureNode struct {
	Kind StructureKind `json:"kind"`

	// Name is the referenced element name (NamedElement only)
	Name string `json:"name,omitempty"`

	// Marker names the list marker glyphs of a ListItem. The marker is
	// rendering-only and never becomes reading-order content.
	Marker string `json:"marker,omitempty"`

	// Table cell spans
	RowSpan    int `json:"rowSpan,omitempty"`
	ColumnSpan int `json:"columnSpan,omitempty"`

	Children []*StructureNode `json:"children,omitempty"`
}

// NewStructureNode creates a hint node with children
func NewStructureNode(kind StructureKind, children ...*StructureNode) *StructureNode {
	return &StructureNode{Kind: kind, Children: children}
}

// NamedElement creates a leaf hint referencing an element by name
func NamedElement(name string) *StructureNode {
	return &StructureNode{Kind: StructureNamedElement, Name: name}
}

// Walk visits the node and its descendants depth-first
func (n *StructureNode) Walk(fn func(*StructureNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
