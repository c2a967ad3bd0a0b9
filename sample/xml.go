package sample

import (
	"github.com/vitalvas/schemadoc/openapi"
	"github.com/vitalvas/schemadoc/xmlfmt"
)

// xmlRoot names the top-level element after xml.name, then title, then
// "root", and synthesizes the schema under that name.
func (g *synth) xmlRoot(s *openapi.Schema) []Sample {
	name := "root"
	switch {
	case s.XML != nil && s.XML.Name != "":
		name = s.XML.Name
	case s.Title != "":
		name = s.Title
	}
	return g.xmlSamples(s, name, 0)
}

// localName is the element name without prefix: xml.name or the inherited
// property name. It is also the fallback text for string leaves.
func localName(s *openapi.Schema, name string) string {
	if s.XML != nil && s.XML.Name != "" {
		return s.XML.Name
	}
	return name
}

func tagName(s *openapi.Schema, name string) string {
	local := localName(s, name)
	if s.XML != nil && s.XML.Prefix != "" {
		return s.XML.Prefix + ":" + local
	}
	return local
}

// namespaceAttrs declares xml.namespace on the element that carries it.
func namespaceAttrs(s *openapi.Schema) []xmlfmt.Attr {
	if s.XML == nil || s.XML.Namespace == "" {
		return nil
	}
	if s.XML.Prefix != "" {
		return []xmlfmt.Attr{{Name: "xmlns:" + s.XML.Prefix, Value: s.XML.Namespace}}
	}
	return []xmlfmt.Attr{{Name: "xmlns", Value: s.XML.Namespace}}
}

func wrapped(s *openapi.Schema) bool {
	return s.XML != nil && s.XML.Wrapped
}

// xmlSamples produces XML-mode samples for the schema found under name.
// Each sample is the list of sibling nodes the schema contributes: one
// element for objects, scalars and wrapped arrays, and the repeated item
// elements for unwrapped arrays.
func (g *synth) xmlSamples(s *openapi.Schema, name string, depth int) []Sample {
	if depth > MaxDepth {
		return []Sample{{Value: []xmlfmt.Node{xmlfmt.Elem(tagName(s, name), xmlfmt.Text(""))}}}
	}

	switch {
	case s.IsCycle():
		return g.xmlScalar(s, name)
	case len(s.AllOf) > 0:
		return g.xmlSamples(flattenAllOf(s), name, depth+1)
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		return expand(s, func(alt *openapi.Schema) []Sample {
			return g.xmlSamples(alt, name, depth+1)
		}, xmlKey)
	}

	if s.HasObjectShape() || s.HasArrayShape() {
		if ex := authorExamples(s); len(ex) > 0 {
			out := make([]Sample, 0, len(ex))
			for _, smp := range ex {
				out = append(out, Sample{Value: valueNodes(tagName(s, name), smp.Value)})
			}
			return out
		}
	}

	switch {
	case s.HasObjectShape():
		return []Sample{{Value: []xmlfmt.Node{g.xmlObject(s, name, depth)}}}
	case s.HasArrayShape():
		return []Sample{{Value: g.xmlArray(s, name, depth)}}
	default:
		return g.xmlScalar(s, name)
	}
}

func (g *synth) xmlScalar(s *openapi.Schema, name string) []Sample {
	v := Primitive(s, localName(s, name), g.cfg.SkipExampleStrings)
	el := &xmlfmt.Element{
		Name:    tagName(s, name),
		Attrs:   namespaceAttrs(s),
		Content: []xmlfmt.Node{xmlfmt.Value(v)},
	}
	return []Sample{{Value: []xmlfmt.Node{el}}}
}

// xmlObject keeps one representative value per property. Properties with
// xml.attribute become attributes of the object element.
func (g *synth) xmlObject(s *openapi.Schema, name string, depth int) *xmlfmt.Element {
	el := &xmlfmt.Element{
		Name:    tagName(s, name),
		Attrs:   namespaceAttrs(s),
		Content: []xmlfmt.Node{},
	}

	for _, propName := range s.PropertyNames() {
		prop := s.Properties[propName]
		if prop == nil {
			prop = &openapi.Schema{}
		}
		if g.skip(prop) {
			continue
		}

		if prop.XML != nil && prop.XML.Attribute {
			v := Primitive(prop, localName(prop, propName), g.cfg.SkipExampleStrings)
			el.Attrs = append(el.Attrs, xmlfmt.Attribute(tagName(prop, propName), v))
			continue
		}

		samples := g.xmlSamples(prop, propName, depth+1)
		if len(samples) == 0 {
			continue
		}
		nodes, _ := samples[0].Value.([]xmlfmt.Node)
		el.Content = append(el.Content, nodes...)
	}
	return el
}

// xmlArray renders one item. A wrapped array puts the items inside an
// element named after the array; an unwrapped array emits the items
// directly. Items are named by items.xml.name, else by the property name
// for wrapped arrays, else by the array's own xml.name or property name.
// Unwrapped arrays follow the OpenAPI XML object and get no wrapper element
// of their own, so <tags><tag/><tag/></tags> needs xml.wrapped: true.
func (g *synth) xmlArray(s *openapi.Schema, name string, depth int) []xmlfmt.Node {
	items := s.Items
	if items == nil {
		items = &openapi.Schema{}
	}

	itemName := name
	if !wrapped(s) {
		itemName = localName(s, name)
	}

	var inner []xmlfmt.Node
	if samples := g.xmlSamples(items, itemName, depth+1); len(samples) > 0 {
		inner, _ = samples[0].Value.([]xmlfmt.Node)
	}

	if !wrapped(s) {
		return inner
	}
	return []xmlfmt.Node{&xmlfmt.Element{
		Name:    tagName(s, name),
		Attrs:   namespaceAttrs(s),
		Content: append([]xmlfmt.Node{}, inner...),
	}}
}

// valueNodes converts an author-supplied value into elements named tag.
// Objects map keys to child elements, lists repeat the tag.
func valueNodes(tag string, v any) []xmlfmt.Node {
	switch x := v.(type) {
	case *openapi.Object:
		el := &xmlfmt.Element{Name: tag, Content: []xmlfmt.Node{}}
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			el.Content = append(el.Content, valueNodes(pair.Key, pair.Value)...)
		}
		return []xmlfmt.Node{el}
	case []any:
		var out []xmlfmt.Node
		for _, item := range x {
			out = append(out, valueNodes(tag, item)...)
		}
		return out
	default:
		return []xmlfmt.Node{xmlfmt.Elem(tag, xmlfmt.Value(v))}
	}
}
