// Package model provides the input representation of fixed (page-oriented)
// documents and the geometric primitives shared by every other package.
//
// A fixed document is a list of pages on which every visual has an absolute
// position. Nothing in this package infers structure; it only describes what
// was rendered and where.
//
// # Pages and Primitives
//
// A [FixedPage] holds [Primitive] values in markup order:
//
//	page := model.NewFixedPage(0, 816, 1056)
//	page.AddPrimitive(model.Primitive{
//	    Kind:   model.PrimitiveGlyphs,
//	    Text:   "Hello",
//	    Bounds: model.NewRect(0, 0, 40, 12),
//	})
//
// Primitives are glyph runs, images or paths. Each one is identified by a
// [FixedNode], the structural path of the element inside the page markup.
//
// # Geometry
//
//   - [Rect] - axis-aligned rectangle, Y growing downward, with an empty value
//   - [Point] - 2D point
//   - [Matrix] - affine transform backed by f64.Aff3
//
// # Document Structure
//
// Pages may carry a [StructureNode] hint tree that names the primitives
// belonging to paragraphs, tables and lists. When present it takes priority
// over geometric reconstruction.
package model
