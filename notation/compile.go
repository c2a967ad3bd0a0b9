package notation

import (
	"slices"
	"strconv"

	"github.com/vitalvas/schemadoc/openapi"
)

// MaxDepth bounds recursion for inputs whose cycles were not cut upstream.
// Deeper positions compile to a leaf typed "{max-depth}".
const MaxDepth = 64

// Compile projects s into a display tree. The walk checks, in order: allOf,
// oneOf/anyOf, a multi-valued type, object shape, array shape, and falls back
// to a primitive leaf, so every input yields a node. The input is never
// modified and equal inputs yield equal trees. A nil schema returns nil.
func Compile(s *openapi.Schema, opts Options) *Node {
	if s == nil {
		return nil
	}
	c := &compiler{opts: opts}
	return c.compile(s, "", 0)
}

type compiler struct {
	opts Options
}

func (c *compiler) compile(s *openapi.Schema, suffix string, depth int) *Node {
	if depth > MaxDepth {
		return &Node{Kind: KindLeaf, Leaf: &TypeDescriptor{Type: "{max-depth}", CSSType: "any"}}
	}

	switch {
	case s.IsCycle():
		return c.leaf(s)
	case len(s.AllOf) > 0:
		return c.allOf(s, depth)
	case len(s.AnyOf) > 0:
		return c.union(s, AnyOf, suffix, depth)
	case len(s.OneOf) > 0:
		return c.union(s, OneOf, suffix, depth)
	case s.Type.IsMulti():
		return c.multiType(s, depth)
	case s.HasObjectShape():
		return c.object(s, depth)
	case s.HasArrayShape():
		return c.array(s, depth)
	default:
		return c.leaf(s)
	}
}

func (c *compiler) leaf(s *openapi.Schema) *Node {
	return &Node{
		Kind:       KindLeaf,
		Deprecated: s.Deprecated,
		Access:     accessOf(s),
		Leaf:       Describe(s, c.opts),
	}
}

// allOf folds every branch into one object node. Branches with structure
// are compiled and merged field by field; typed primitive branches become
// synthetic prop<N> fields; branches holding only annotations contribute
// their metadata and required list.
func (c *compiler) allOf(s *openapi.Schema, depth int) *Node {
	acc := &Node{Kind: KindObject}
	var required []string

	for i, branch := range s.AllOf {
		if branch == nil {
			continue
		}
		required = append(required, branch.Required...)

		switch {
		case branch.IsCycle():
			c.addSynthetic(acc, c.leaf(branch))
		case branch.HasComposition() || branch.HasObjectShape() || branch.HasArrayShape() || branch.Type.IsMulti():
			suffix := ""
			if i > 0 && (len(branch.OneOf) > 0 || len(branch.AnyOf) > 0) {
				suffix = strconv.Itoa(i)
			}
			mergeNode(acc, c.compile(branch, suffix, depth+1))
		case !branch.Type.IsEmpty():
			c.addSynthetic(acc, c.leaf(branch))
		default:
			mergeMeta(acc, branch)
		}
	}

	rest := s.Clone()
	rest.AllOf = nil
	required = append(required, rest.Required...)
	if rest.HasComposition() || rest.HasObjectShape() || rest.HasArrayShape() {
		mergeNode(acc, c.compile(rest, "", depth+1))
	}
	mergeMeta(acc, rest)

	markRequired(acc, required)
	return acc
}

func (c *compiler) addSynthetic(acc *Node, n *Node) {
	name := "prop" + strconv.Itoa(len(acc.Fields))
	acc.Fields = append(acc.Fields, Field{Key: name, Name: name, Kind: FieldProperty, Node: n})
}

// mergeNode shallow-merges a compiled branch into the allOf accumulator.
func mergeNode(acc, n *Node) {
	switch n.Kind {
	case KindNull:
		return
	case KindLeaf:
		name := "prop" + strconv.Itoa(len(acc.Fields))
		acc.Fields = append(acc.Fields, Field{Key: name, Name: name, Kind: FieldProperty, Node: n})
		return
	case KindArray:
		if len(acc.Fields) == 0 && len(acc.Compositions) == 0 {
			acc.Kind = KindArray
		}
		acc.Items = n.Items
		acc.ArrayItemType = n.ArrayItemType
	}

	for _, f := range n.Fields {
		idx := slices.IndexFunc(acc.Fields, func(existing Field) bool {
			return existing.Name == f.Name && existing.Kind == f.Kind
		})
		if idx >= 0 {
			acc.Fields[idx] = f
			continue
		}
		acc.Fields = append(acc.Fields, f)
	}
	acc.Compositions = append(acc.Compositions, n.Compositions...)
	acc.Constraints = append(acc.Constraints, n.Constraints...)

	if n.Title != "" {
		acc.Title = n.Title
	}
	if n.Description != "" {
		acc.Description = n.Description
	}
	if n.Access != AccessNone {
		acc.Access = n.Access
	}
	acc.Deprecated = acc.Deprecated || n.Deprecated
}

func mergeMeta(acc *Node, s *openapi.Schema) {
	if s.Title != "" {
		acc.Title = s.Title
	}
	if s.Description != "" {
		acc.Description = s.Description
	}
	if a := accessOf(s); a != AccessNone {
		acc.Access = a
	}
	acc.Deprecated = acc.Deprecated || s.Deprecated
}

// markRequired flags property fields listed in names. Deprecated fields are
// flagged but keep their plain key.
func markRequired(n *Node, names []string) {
	for i := range n.Fields {
		f := &n.Fields[i]
		if f.Kind != FieldProperty || f.Required || !slices.Contains(names, f.Name) {
			continue
		}
		f.Required = true
		if !f.Node.Deprecated {
			f.Key = f.Name + "*"
		}
	}
}

// union compiles oneOf or anyOf. Each alternative is merged with the
// node's remaining keywords before compiling, so shared properties appear
// in every option. When both keywords are present anyOf is expanded here
// and oneOf stays in the shared part.
func (c *compiler) union(s *openapi.Schema, kind CompositionKind, suffix string, depth int) *Node {
	shared := s.Clone()
	shared.Title = ""
	shared.Description = ""

	var alternatives []*openapi.Schema
	if kind == AnyOf {
		alternatives = s.AnyOf
		shared.AnyOf = nil
	} else {
		alternatives = s.OneOf
		shared.OneOf = nil
	}

	comp := Composition{Kind: kind, Suffix: suffix}
	allRead, allWrite := true, true

	for i, alt := range alternatives {
		if alt == nil {
			alt = &openapi.Schema{}
		}
		n := c.compile(openapi.Merge(shared, alt), "", depth+1)
		comp.Options = append(comp.Options, Option{Index: i + 1, Title: alt.Title, Node: n})

		allRead = allRead && n.Access == AccessReadOnly
		allWrite = allWrite && n.Access == AccessWriteOnly
	}

	node := &Node{
		Kind:         KindObject,
		Title:        s.Title,
		Description:  s.Description,
		Deprecated:   s.Deprecated,
		Compositions: []Composition{comp},
	}
	switch {
	case allRead:
		node.Access = AccessReadOnly
	case allWrite:
		node.Access = AccessWriteOnly
	}
	return node
}

// multiType handles a type list. Primitive types, including an array of a
// single primitive type, collapse into one leaf. Complex types each get an
// option of a synthesized oneOf, with the primitives gathered into one
// trailing option.
func (c *compiler) multiType(s *openapi.Schema, depth int) *Node {
	types := dedupe(slices.Clone(s.Type.Values()))
	primitiveArray := isArrayOfPrimitive(s)

	hasComplex := false
	for _, t := range types {
		if t == "object" || (t == "array" && !primitiveArray) || (t != "null" && t != "array" && !slices.Contains(primitiveTypes, t)) {
			hasComplex = true
		}
	}

	if !hasComplex {
		return c.leaf(s)
	}

	comp := Composition{Kind: OneOf}
	var primitives []string

	for _, t := range types {
		var n *Node
		switch {
		case slices.Contains(primitiveTypes, t), t == "array" && primitiveArray:
			primitives = append(primitives, t)
			continue
		case t == "null":
			n = &Node{Kind: KindNull}
		case t == "object":
			opt := s.Clone()
			opt.Type = openapi.TypeString("object")
			n = c.object(opt, depth+1)
		case t == "array":
			opt := s.Clone()
			opt.Type = openapi.TypeString("array")
			n = c.array(opt, depth+1)
		default:
			opt := s.Clone()
			opt.Type = openapi.TypeString(t)
			n = c.leaf(opt)
		}
		comp.Options = append(comp.Options, Option{Index: len(comp.Options) + 1, Node: n})
	}

	if len(primitives) > 0 {
		opt := s.Clone()
		opt.Type = openapi.TypeArray(primitives...)
		comp.Options = append(comp.Options, Option{Index: len(comp.Options) + 1, Node: c.leaf(opt)})
	}

	return &Node{
		Kind:         KindObject,
		Title:        s.Title,
		Description:  s.Description,
		Deprecated:   s.Deprecated,
		Access:       accessOf(s),
		Compositions: []Composition{comp},
	}
}

func (c *compiler) object(s *openapi.Schema, depth int) *Node {
	n := &Node{
		Kind:        KindObject,
		Title:       s.Title,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Access:      accessOf(s),
	}

	for _, name := range s.PropertyNames() {
		prop := s.Properties[name]
		if prop == nil {
			prop = &openapi.Schema{}
		}
		n.Fields = append(n.Fields, Field{
			Key:  name,
			Name: name,
			Kind: FieldProperty,
			Node: c.compile(prop, "", depth+1),
		})
	}
	markRequired(n, s.Required)

	for _, pattern := range s.PatternPropertyNames() {
		prop := s.PatternProperties[pattern]
		if prop == nil {
			prop = &openapi.Schema{}
		}
		n.Fields = append(n.Fields, Field{
			Key:  patternKey(pattern),
			Name: pattern,
			Kind: FieldPattern,
			Node: c.compile(prop, "", depth+1),
		})
	}

	if ap := s.AdditionalProperties; ap != nil && (ap.Allowed || ap.Schema != nil) {
		var child *Node
		if ap.Schema != nil {
			child = c.compile(ap.Schema, "", depth+1)
		} else {
			child = &Node{Kind: KindLeaf, Leaf: &TypeDescriptor{Type: "any", CSSType: "any"}}
		}
		n.Fields = append(n.Fields, Field{Key: AdditionalKey, Kind: FieldAdditional, Node: child})
	}

	return n
}

func (c *compiler) array(s *openapi.Schema, depth int) *Node {
	items := s.Items
	if items == nil {
		items = &openapi.Schema{}
	}

	n := &Node{
		Kind:        KindArray,
		Title:       s.Title,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Access:      accessOf(s),
		Constraints: arrayConstraints(s),
	}
	if n.Description == "" && items.Description != "" {
		n.Description = "array<" + items.Description + ">"
	}

	flags := &openapi.Schema{Deprecated: s.Deprecated, ReadOnly: s.ReadOnly, WriteOnly: s.WriteOnly}
	n.Items = c.compile(openapi.Merge(items, flags), "", depth+1)

	if items.HasArrayShape() && !items.IsCycle() {
		n.ArrayItemType = elementType(items.Items, c.opts)
	}
	return n
}

// elementType labels the elements of a nested array.
func elementType(s *openapi.Schema, opts Options) string {
	switch {
	case s == nil:
		return "any"
	case s.IsCycle():
		return Describe(s, opts).Type
	case s.HasObjectShape():
		return "object"
	case s.HasArrayShape():
		return "array"
	case s.HasComposition():
		return "composition"
	}
	if t := Describe(s, opts).Type; t != "" {
		return t
	}
	return "any"
}

func arrayConstraints(s *openapi.Schema) []string {
	var out []string
	if s.UniqueItems {
		out = append(out, "Unique items")
	}
	switch {
	case s.MinItems != nil && s.MaxItems != nil:
		out = append(out, "Min items: "+strconv.Itoa(*s.MinItems)+", Max items: "+strconv.Itoa(*s.MaxItems))
	case s.MinItems != nil:
		out = append(out, "Min items: "+strconv.Itoa(*s.MinItems))
	case s.MaxItems != nil:
		out = append(out, "Max items: "+strconv.Itoa(*s.MaxItems))
	}
	return out
}
