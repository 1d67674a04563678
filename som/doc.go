// Package som is the semantic object model of a fixed page: the tree of
// blocks, tables and column groups reconstructed from absolutely positioned
// primitives, and the spatial rules that put that tree into reading order.
//
// A Page owns every box of its tree. Boxes are addressed by NodeID and all
// structural changes go through Page methods:
//
//	page := som.NewPage(fixedPage)
//	block := page.NewFixedBlock()
//	elem := page.Register(som.NewTextElement(&fixedPage.Primitives[0], 0, 5))
//	_ = page.Add(block, elem)
//	_ = page.AddSorted(page.Root(), block)
//
// # Ordering
//
// Along each axis two boxes compare as Before, OverlapBefore, Equal,
// OverlapAfter or After (see CompareHorizontal and CompareVertical).
// Elements inside a block are read line by line. Containers are ordered by
// Page.Compare, which consults spatial position first, then markup
// adjacency and finally absolute position.
//
// # Ruling lines
//
// LineCollection indexes the horizontal and vertical rules of a page so
// that layout code can ask whether a rule separates two pieces of content.
package som
