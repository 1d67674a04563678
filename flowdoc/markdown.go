package flowdoc

import (
	"strings"
)

// Markdown returns the document as markdown. Tables become pipe tables;
// nested tables are flattened into their cell text.
func (d *Document) Markdown() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		writeBlock(&sb, b, "")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeBlock(sb *strings.Builder, e *Element, indent string) {
	switch e.Kind {
	case KindParagraph:
		text := strings.TrimSpace(inlineMarkdown(e))
		if text == "" {
			return
		}
		sb.WriteString(indent + text + "\n\n")
	case KindTable:
		writeTable(sb, e)
	case KindList:
		for _, item := range e.Children {
			writeListItem(sb, item, indent)
		}
		sb.WriteString("\n")
	case KindImage:
		sb.WriteString(indent + "![](" + e.Source + ")\n\n")
	case KindPlaceholder:
		sb.WriteString(indent + "<!-- page not loaded -->\n\n")
	case KindRun, KindHyperlink:
		sb.WriteString(indent + strings.TrimSpace(inlineMarkdown(&Element{Children: []*Element{e}})) + "\n\n")
	default:
		for _, c := range e.Children {
			writeBlock(sb, c, indent)
		}
	}
}

func writeListItem(sb *strings.Builder, item *Element, indent string) {
	var first strings.Builder
	var nested []*Element
	for _, c := range item.Children {
		switch c.Kind {
		case KindList:
			nested = append(nested, c)
		default:
			first.WriteString(strings.TrimSpace(c.inlineText()))
		}
	}
	sb.WriteString(indent + "- " + first.String() + "\n")
	for _, list := range nested {
		for _, sub := range list.Children {
			writeListItem(sb, sub, indent+"  ")
		}
	}
}

// inlineText returns the content of a list item child on a single line
func (e *Element) inlineText() string {
	if e.Kind == KindParagraph {
		return inlineMarkdown(e)
	}
	return strings.ReplaceAll(strings.TrimSpace(e.PlainText()), "\n", " ")
}

func inlineMarkdown(e *Element) string {
	var sb strings.Builder
	for _, c := range e.Children {
		switch c.Kind {
		case KindRun:
			sb.WriteString(c.Text)
		case KindHyperlink:
			sb.WriteString("[" + inlineMarkdown(c) + "](" + c.NavigateURI + ")")
		case KindImage:
			sb.WriteString("![](" + c.Source + ")")
		default:
			sb.WriteString(inlineMarkdown(c))
		}
	}
	return sb.String()
}

func writeTable(sb *strings.Builder, table *Element) {
	var rows [][]string
	width := 0
	table.Walk(func(e *Element) bool {
		if e.Kind != KindTableRow {
			return true
		}
		var row []string
		for _, cell := range e.Children {
			text := escapeMarkdown(strings.TrimSpace(cell.PlainText()))
			row = append(row, text)
			for i := 1; i < cell.Properties.ColumnSpan; i++ {
				row = append(row, "")
			}
		}
		if len(row) > width {
			width = len(row)
		}
		rows = append(rows, row)
		return false
	})
	if len(rows) == 0 {
		return
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|")
	for i := 0; i < width; i++ {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	sb.WriteString("\n")
}

// escapeMarkdown escapes characters that break a table cell
func escapeMarkdown(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch r {
		case '|':
			sb.WriteString("\\|")
		case '\n':
			sb.WriteString(" ")
		case '\r':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
