package openapi

import (
	"encoding/json"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Object is an ordered JSON object value. Author-supplied example, default,
// enum and const values that are JSON objects decode into Object so their key
// order survives to generated output.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// Document represents the parts of an OpenAPI v3.x document that carry
// schemas and examples. Schemas are expected to be fully inlined; $ref values
// are kept for display only and never resolved.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
type Document struct {
	OpenAPI    string               `json:"openapi" yaml:"openapi"`
	Info       Info                 `json:"info" yaml:"info"`
	Paths      map[string]*PathItem `json:"paths,omitempty" yaml:"paths,omitempty"`
	Components *Components          `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Components holds reusable schemas and examples.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object
type Components struct {
	Schemas  map[string]*Schema  `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Examples map[string]*Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// PathItem describes the operations available on a single path.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
type PathItem struct {
	Summary     string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Get         *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put         *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post        *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete      *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options     *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head        *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch       *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace       *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Methods lists the lower-case HTTP methods of a path item in the order
// the OpenAPI specification declares them.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Operation returns the operation for a lower-case HTTP method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	switch method {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	}
	return nil
}

// Operations returns the path item's operations keyed by lower-case HTTP
// method, skipping methods that are not defined.
func (p *PathItem) Operations() map[string]*Operation {
	ops := make(map[string]*Operation)
	for _, method := range Methods {
		if op := p.Operation(method); op != nil {
			ops[method] = op
		}
	}
	return ops
}

// Operation describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Operation struct {
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string               `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty" yaml:"responses,omitempty"`
	Deprecated  bool                 `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// RequestBody describes a single request body.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
type RequestBody struct {
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                  `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response describes a single response from an API operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
type Response struct {
	Description string                `json:"description" yaml:"description"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType describes a media type with a schema and optional examples.
// ExampleOrder records the declaration order of the Examples keys.
//
// See: https://spec.openapis.org/oas/v3.1.0#media-type-object
type MediaType struct {
	Schema       *Schema             `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example      any                 `json:"example,omitempty" yaml:"-"`
	Examples     map[string]*Example `json:"examples,omitempty" yaml:"examples,omitempty"`
	ExampleOrder []string            `json:"-" yaml:"-"`
}

// Example represents an author-supplied example value.
//
// See: https://spec.openapis.org/oas/v3.1.0#example-object
type Example struct {
	Summary       string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Value         any    `json:"value,omitempty" yaml:"-"`
	ExternalValue string `json:"externalValue,omitempty" yaml:"externalValue,omitempty"`
}

// SchemaType represents a JSON Schema type that can be a single string
// or an array of strings (per JSON Schema Draft 2020-12, section 6.1.1).
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
type SchemaType struct {
	value []string
}

// TypeString creates a SchemaType with a single type.
func TypeString(t string) SchemaType {
	return SchemaType{value: []string{t}}
}

// TypeArray creates a SchemaType with multiple types (e.g., ["string", "null"]).
func TypeArray(types ...string) SchemaType {
	return SchemaType{value: types}
}

// Values returns the underlying type values.
func (st SchemaType) Values() []string {
	return st.value
}

// IsEmpty reports whether the schema type is unset.
func (st SchemaType) IsEmpty() bool {
	return len(st.value) == 0
}

// IsMulti reports whether the type was declared as a list.
func (st SchemaType) IsMulti() bool {
	return len(st.value) > 1
}

// Is reports whether the type is exactly the single type t.
func (st SchemaType) Is(t string) bool {
	return len(st.value) == 1 && st.value[0] == t
}

// Has reports whether t is one of the declared types.
func (st SchemaType) Has(t string) bool {
	return slices.Contains(st.value, t)
}

// IsZero implements the yaml.v3 IsZeroer interface so that
// omitempty on YAML struct tags correctly omits an unset type field.
func (st SchemaType) IsZero() bool {
	return len(st.value) == 0
}

// MarshalJSON encodes the schema type as a JSON string (single type)
// or JSON array (multiple types).
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st.value) == 1 {
		return json.Marshal(st.value[0])
	}
	return json.Marshal(st.value)
}

// UnmarshalJSON decodes the schema type from either a JSON string or array.
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		st.value = []string{single}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	st.value = arr
	return nil
}

// MarshalYAML encodes the schema type as a YAML scalar (single type)
// or YAML sequence (multiple types).
func (st SchemaType) MarshalYAML() (any, error) {
	switch len(st.value) {
	case 0:
		return nil, nil
	case 1:
		return st.value[0], nil
	default:
		return st.value, nil
	}
}

// UnmarshalYAML decodes the schema type from either a YAML scalar or sequence.
func (st *SchemaType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		st.value = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		st.value = arr
		return nil
	default:
		return fmt.Errorf("openapi: unsupported YAML node kind %d for SchemaType", node.Kind)
	}
}

// Schema represents a JSON Schema / OpenAPI Schema Object node as handed over
// by an upstream $ref resolver: subschemas are inlined and cycle points carry
// a CircularReference sentinel instead of a back edge.
//
// Properties and PatternProperties are maps; their declaration order is kept
// in PropertyOrder and PatternPropertyOrder (filled by the decoders). Names
// missing from the order slices are visited after the ordered ones, sorted.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
// See: https://json-schema.org/draft/2020-12/json-schema-validation
type Schema struct {
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type and format.
	// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
	Type     SchemaType `json:"type,omitzero" yaml:"type,omitempty"`
	Format   string     `json:"format,omitempty" yaml:"format,omitempty"`
	Nullable bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// Metadata annotations.
	// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-9
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"-"`
	Example     any    `json:"example,omitempty" yaml:"-"`
	Examples    []any  `json:"examples,omitempty" yaml:"-"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	WriteOnly   bool   `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`

	// Numeric constraints.
	// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.2
	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty" yaml:"-"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty" yaml:"-"`

	// String constraints.
	// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.3
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Array constraints.
	// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.4
	Items       *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	// Object constraints.
	// See: https://json-schema.org/draft/2020-12/json-schema-core#section-10.3.2
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	PropertyOrder        []string           `json:"-" yaml:"-"`
	PatternProperties    map[string]*Schema `json:"patternProperties,omitempty" yaml:"patternProperties,omitempty"`
	PatternPropertyOrder []string           `json:"-" yaml:"-"`
	AdditionalProperties *Additional        `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`

	// Enum and const.
	// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.2
	Enum  []any `json:"enum,omitempty" yaml:"-"`
	Const any   `json:"const,omitempty" yaml:"-"`

	// Composition keywords.
	// See: https://json-schema.org/draft/2020-12/json-schema-core#section-10.2.1
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`

	// XML projection metadata.
	// See: https://spec.openapis.org/oas/v3.1.0#xml-object
	XML *XML `json:"xml,omitempty" yaml:"xml,omitempty"`

	// CircularReference is set by the upstream resolver where it cut a cycle.
	CircularReference *CircularReference `json:"circularReference,omitempty" yaml:"circularReference,omitempty"`
}

// Additional represents additionalProperties, which is either a boolean or a
// schema. A nil *Additional means the keyword is absent.
//
// See: https://json-schema.org/draft/2020-12/json-schema-core#section-10.3.2.3
type Additional struct {
	Allowed bool
	Schema  *Schema
}

// AdditionalSchema returns an Additional holding the given schema.
func AdditionalSchema(s *Schema) *Additional {
	return &Additional{Allowed: true, Schema: s}
}

// AdditionalBool returns an Additional holding a boolean.
func AdditionalBool(allowed bool) *Additional {
	return &Additional{Allowed: allowed}
}

// MarshalJSON encodes the keyword as a schema or a boolean.
func (a Additional) MarshalJSON() ([]byte, error) {
	if a.Schema != nil {
		return json.Marshal(a.Schema)
	}
	return json.Marshal(a.Allowed)
}

// UnmarshalJSON decodes the keyword from a boolean or a schema object.
func (a *Additional) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("openapi: additionalProperties: %w", err)
	}
	return a.UnmarshalYAML(&node)
}

// MarshalYAML encodes the keyword as a schema or a boolean.
func (a Additional) MarshalYAML() (any, error) {
	if a.Schema != nil {
		return a.Schema, nil
	}
	return a.Allowed, nil
}

// UnmarshalYAML decodes the keyword from a boolean scalar or a schema mapping.
func (a *Additional) UnmarshalYAML(node *yaml.Node) error {
	node = unwrapNode(node)
	if node.Kind == yaml.ScalarNode {
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("openapi: additionalProperties must be a boolean or schema: %w", err)
		}
		*a = Additional{Allowed: b}
		return nil
	}

	s := new(Schema)
	if err := s.UnmarshalYAML(node); err != nil {
		return err
	}
	*a = Additional{Allowed: true, Schema: s}
	return nil
}

// CircularReference marks a schema position where the upstream resolver found
// a cycle. Name is the referenced schema's name.
type CircularReference struct {
	Name string `json:"name" yaml:"name"`
	Ref  string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// XML describes XML-specific metadata for properties, used when
// producing XML output.
//
// See: https://spec.openapis.org/oas/v3.1.0#xml-object
type XML struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Attribute bool   `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Wrapped   bool   `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`
}
