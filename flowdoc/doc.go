// Package flowdoc assembles a flow document from a flow and renders it.
//
// [Assemble] turns the Start/End pairs of a flow zone into nested
// [Element] values (sections, paragraphs, tables, lists, hyperlinks) and
// stamps each with the properties of its semantic box: flow direction,
// language, column span and table border. The result can be rendered as
// HTML through golang.org/x/net/html, or as markdown:
//
//	doc, err := flowdoc.Assemble(zone)
//	if err != nil {
//	    return err
//	}
//	err = doc.RenderHTML(os.Stdout)
package flowdoc
