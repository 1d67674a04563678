// Package ruling extracts ruling lines from the path primitives of a fixed
// page.
//
// Ruling lines are the drawn strokes (table borders, separators, underlines)
// that act as spatial evidence that two regions belong to different cells or
// blocks. Lines are returned in page space and classified as horizontal or
// vertical:
//
//	result := ruling.NewExtractor().Extract(page)
//	for _, l := range result.Horizontals() {
//	    lines.AddHorizontal(l.Start, l.End)
//	}
//
// Rectangles are recognised and split into their four edges; thin filled
// rectangles, a common way to draw rules, collapse into a single line.
package ruling
