// Package flow maps reconstructed fixed pages onto a flat, totally ordered
// flow sequence.
//
// A flow is a [Zone] of [Node] values. Start and End nodes bracket flow
// elements (sections, paragraphs, tables, rows, cells, lists, hyperlinks),
// Run nodes carry text elements and Object nodes embed images. The whole
// flow is framed by two Boundary nodes; a page that was not loaded shows up
// as a Virtual node and a page without content as a Noop node.
//
// # Building
//
// A [Builder] assembles the flow page by page:
//
//	b := flow.NewBuilder(logger)
//	for _, page := range pages {
//	    if err := b.AddPage(page); err != nil {
//	        return err
//	    }
//	}
//	zone, err := b.Finish()
//
// AddPage walks a semantic page in reading order. AddStructuredPage uses
// the document-structure hints of a fixed page instead, through a
// [DSBuilder]: named elements are resolved with a [NameTable] and whatever
// the hints do not reach follows in markup order.
//
// # Positions
//
// Only a Zone assigns flow positions. Positions are unique and always equal
// the index of the node, so sorting by position reproduces the traversal.
// A [Mapping] translates between character positions in primitives
// ([FixedPosition]) and in the flow ([FlowPosition]).
package flow
