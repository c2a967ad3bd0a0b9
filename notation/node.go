package notation

import (
	"strconv"

	"github.com/vitalvas/schemadoc/openapi"
)

// Kind discriminates Node variants.
type Kind int

const (
	KindLeaf Kind = iota
	KindObject
	KindArray
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	default:
		return "leaf"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Access is the read/write visibility of a node.
type Access int

const (
	AccessNone Access = iota
	AccessReadOnly
	AccessWriteOnly
)

func (a Access) String() string {
	switch a {
	case AccessReadOnly:
		return "readonly"
	case AccessWriteOnly:
		return "writeonly"
	default:
		return ""
	}
}

// Marker returns the single-glyph marker for the access level, or "".
func (a Access) Marker() string {
	switch a {
	case AccessReadOnly:
		return ReadOnlyMarker
	case AccessWriteOnly:
		return WriteOnlyMarker
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Access) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// accessOf collapses readOnly and writeOnly. readOnly wins when a schema
// sets both.
func accessOf(s *openapi.Schema) Access {
	switch {
	case s.ReadOnly:
		return AccessReadOnly
	case s.WriteOnly:
		return AccessWriteOnly
	default:
		return AccessNone
	}
}

// Node is one position of the display tree.
//
// Object nodes list Fields and Compositions, array nodes carry Items, leaf
// nodes carry a TypeDescriptor and null nodes carry nothing. Every node holds
// the metadata needed to render it without the source schema.
type Node struct {
	Kind          Kind            `json:"kind" yaml:"kind"`
	Title         string          `json:"title,omitempty" yaml:"title,omitempty"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated    bool            `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Access        Access          `json:"access,omitempty" yaml:"access,omitempty"`
	Constraints   []string        `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Fields        []Field         `json:"fields,omitempty" yaml:"fields,omitempty"`
	Compositions  []Composition   `json:"compositions,omitempty" yaml:"compositions,omitempty"`
	Items         *Node           `json:"items,omitempty" yaml:"items,omitempty"`
	ArrayItemType string          `json:"arrayItemType,omitempty" yaml:"arrayItemType,omitempty"`
	Leaf          *TypeDescriptor `json:"leaf,omitempty" yaml:"leaf,omitempty"`
}

// Field looks up an object field by display key.
func (n *Node) Field(key string) (*Field, bool) {
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			return &n.Fields[i], true
		}
	}
	return nil, false
}

// FieldKind tells where an object field came from.
type FieldKind int

const (
	FieldProperty FieldKind = iota
	FieldPattern
	FieldAdditional
)

func (k FieldKind) String() string {
	switch k {
	case FieldPattern:
		return "pattern"
	case FieldAdditional:
		return "additional"
	default:
		return "property"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Field is one entry of an object node. Key is the display key: the
// property name with a trailing "*" when required, "<pattern: X>" for
// patternProperties and "<any-key>" for additionalProperties.
type Field struct {
	Key      string    `json:"key" yaml:"key"`
	Name     string    `json:"name" yaml:"name"`
	Kind     FieldKind `json:"kind" yaml:"kind"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Node     *Node     `json:"node" yaml:"node"`
}

// AdditionalKey is the display key of the additionalProperties field.
const AdditionalKey = "<any-key>"

func patternKey(pattern string) string {
	return "<pattern: " + pattern + ">"
}

// CompositionKind is oneOf or anyOf.
type CompositionKind int

const (
	OneOf CompositionKind = iota
	AnyOf
)

func (k CompositionKind) String() string {
	if k == AnyOf {
		return "anyOf"
	}
	return "oneOf"
}

// MarshalText implements encoding.TextMarshaler.
func (k CompositionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Composition is a labelled set of alternatives. Suffix tells apart several
// compositions gathered into one node by allOf.
type Composition struct {
	Kind    CompositionKind `json:"kind" yaml:"kind"`
	Suffix  string          `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Options []Option        `json:"options" yaml:"options"`
}

// Label renders the legacy reserved key, "::ONE~OF" or "::ANY~OF" followed
// by the suffix.
func (c Composition) Label() string {
	if c.Kind == AnyOf {
		return "::ANY~OF" + c.Suffix
	}
	return "::ONE~OF" + c.Suffix
}

// Option is one alternative of a composition. Index is 1-based.
type Option struct {
	Index int    `json:"index" yaml:"index"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Node  *Node  `json:"node" yaml:"node"`
}

// Label renders "::OPTION~<index>" with "~<title>" appended when titled.
func (o Option) Label() string {
	label := "::OPTION~" + strconv.Itoa(o.Index)
	if o.Title != "" {
		label += "~" + o.Title
	}
	return label
}
