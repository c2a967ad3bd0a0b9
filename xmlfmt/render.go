package xmlfmt

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DefaultIndent is the per-level indentation used when callers ask for
// indented output without choosing a unit.
const DefaultIndent = "    "

// Node is one entry of an ordered XML tree: *Element, Text or CData.
type Node interface {
	isNode()
}

// Element is a tag with ordered attributes and ordered content.
// A nil Content renders as a self-closing tag; a non-nil empty Content
// renders an explicit open and close pair.
type Element struct {
	Name    string
	Attrs   []Attr
	Content []Node
}

// Attr is a single attribute. Values are escaped on output.
type Attr struct {
	Name  string
	Value string
}

// Text is character data, escaped on output.
type Text string

// CData is emitted inside CDATA sections without escaping.
type CData string

func (*Element) isNode() {}
func (Text) isNode()     {}
func (CData) isNode()    {}

// Declaration controls the XML declaration prepended to the output.
type Declaration struct {
	// Encoding defaults to UTF-8.
	Encoding string

	// Standalone adds standalone="yes" or standalone="no" when set.
	Standalone *bool
}

// Options configures Render.
type Options struct {
	// Declaration, when non-nil, prepends an XML declaration.
	Declaration *Declaration

	// Indent is repeated once per nesting level. Empty disables
	// newlines and indentation entirely.
	Indent string
}

// Elem builds an element with the given content. Call with no content for
// a self-closing tag.
func Elem(name string, content ...Node) *Element {
	return &Element{Name: name, Content: content}
}

// Attribute returns an attribute whose value is formatted like Value.
func Attribute(name string, v any) Attr {
	return Attr{Name: name, Value: string(Value(v))}
}

// Value formats a scalar as character data. Integers and floats use
// their shortest decimal form, nil becomes empty text and structured
// values are written as compact JSON.
func Value(v any) Text {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Text(x)
	case bool:
		return Text(strconv.FormatBool(x))
	case int:
		return Text(strconv.Itoa(x))
	case int64:
		return Text(strconv.FormatInt(x, 10))
	case uint64:
		return Text(strconv.FormatUint(x, 10))
	case float64:
		return Text(strconv.FormatFloat(x, 'f', -1, 64))
	case Text:
		return x
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return Text(data)
	}
}

// Render writes nodes as an XML string, preserving their order.
// Empty input without a declaration renders as "".
func Render(nodes []Node, opts Options) string {
	w := &writer{indent: opts.Indent}

	if d := opts.Declaration; d != nil {
		w.declaration(d)
	}
	for _, n := range nodes {
		w.node(n, 0)
	}
	return w.b.String()
}

type writer struct {
	b      strings.Builder
	indent string
}

func (w *writer) declaration(d *Declaration) {
	enc := d.Encoding
	if enc == "" {
		enc = "UTF-8"
	}
	w.b.WriteString(`<?xml version="1.0" encoding="`)
	w.b.WriteString(escape(enc))
	w.b.WriteByte('"')
	if d.Standalone != nil {
		if *d.Standalone {
			w.b.WriteString(` standalone="yes"`)
		} else {
			w.b.WriteString(` standalone="no"`)
		}
	}
	w.b.WriteString("?>")
}

// newline starts a new indented line, except at the very start of output.
func (w *writer) newline(depth int) {
	if w.indent == "" || w.b.Len() == 0 {
		return
	}
	w.b.WriteByte('\n')
	w.b.WriteString(strings.Repeat(w.indent, depth))
}

func (w *writer) node(n Node, depth int) {
	switch x := n.(type) {
	case *Element:
		if x != nil {
			w.element(x, depth)
		}
	case Text:
		w.b.WriteString(escape(string(x)))
	case CData:
		w.b.WriteString("<![CDATA[")
		w.b.WriteString(strings.ReplaceAll(string(x), "]]>", "]]]]><![CDATA[>"))
		w.b.WriteString("]]>")
	}
}

func (w *writer) element(e *Element, depth int) {
	w.newline(depth)
	w.b.WriteByte('<')
	w.b.WriteString(e.Name)
	for _, a := range e.Attrs {
		w.b.WriteByte(' ')
		w.b.WriteString(a.Name)
		w.b.WriteString(`="`)
		w.b.WriteString(escape(a.Value))
		w.b.WriteByte('"')
	}

	if e.Content == nil {
		w.b.WriteString("/>")
		return
	}
	w.b.WriteByte('>')

	nested := false
	for _, c := range e.Content {
		if _, ok := c.(*Element); ok {
			nested = true
		}
		w.node(c, depth+1)
	}

	if nested {
		w.newline(depth)
	}
	w.b.WriteString("</")
	w.b.WriteString(e.Name)
	w.b.WriteByte('>')
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
