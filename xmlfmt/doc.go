// Package xmlfmt renders ordered trees of elements, text and CDATA to XML.
//
// The renderer has no schema awareness. Sibling order in the input is output
// order, attributes are written in the order given, and an element with nil
// content renders self-closed:
//
//	xmlfmt.Render([]xmlfmt.Node{
//	    xmlfmt.Elem("a", xmlfmt.Elem("b", xmlfmt.Value(1))),
//	}, xmlfmt.Options{Indent: "  "})
//	// <a>
//	//   <b>1</b>
//	// </a>
//
// Text and attribute values escape the five predefined entities. CDATA
// content is never escaped; an embedded "]]>" is split across adjacent
// sections so the terminator cannot close the block early.
package xmlfmt
