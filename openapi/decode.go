package openapi

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseSchema decodes a single schema from JSON or YAML. Property declaration
// order is recorded in PropertyOrder and PatternPropertyOrder.
func ParseSchema(data []byte) (*Schema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("openapi: decode schema: %w", err)
	}
	return &s, nil
}

// ParseDocument decodes an OpenAPI document from JSON or YAML. Every schema
// and example inside it keeps its declaration order.
func ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("openapi: decode document: %w", err)
	}
	if doc.OpenAPI == "" {
		return nil, ErrNotOpenAPI
	}
	return &doc, nil
}

// DecodeValue decodes strict JSON text into plain values. Objects become
// *Object with their keys in source order; arrays become []any.
func DecodeValue(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("openapi: decode value: %w", err)
	}
	return nodeValue(&node)
}

// UnmarshalJSON decodes the schema through the YAML node path so JSON input
// records property order the same way YAML input does.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("openapi: decode schema: %w", err)
	}
	return s.UnmarshalYAML(&node)
}

// UnmarshalYAML decodes a schema mapping. Boolean schemas are accepted:
// true decodes to the empty schema, false to a schema that admits nothing
// (represented as an empty enum).
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	node = unwrapNode(node)

	switch node.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("openapi: line %d: %w", node.Line, ErrInvalidSchema)
		}
		*s = Schema{}
		if !b {
			s.Enum = []any{}
		}
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("openapi: line %d: %w", node.Line, ErrInvalidSchema)
	}

	type plain Schema
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Schema(p)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, unwrapNode(node.Content[i+1])

		var err error
		switch key {
		case "properties":
			s.PropertyOrder = mappingKeys(val)
		case "patternProperties":
			s.PatternPropertyOrder = mappingKeys(val)
		case "default":
			s.Default, err = nodeValue(val)
		case "example":
			s.Example, err = nodeValue(val)
		case "const":
			s.Const, err = nodeValue(val)
		case "enum":
			s.Enum, err = sequenceValues(val)
		case "examples":
			s.Examples, err = schemaExamples(val)
		case "exclusiveMinimum":
			s.ExclusiveMinimum, err = exclusiveBound(val, &s.Minimum)
		case "exclusiveMaximum":
			s.ExclusiveMaximum, err = exclusiveBound(val, &s.Maximum)
		}
		if err != nil {
			return fmt.Errorf("openapi: %s: %w", key, err)
		}
	}
	return nil
}

// UnmarshalYAML decodes a media type and records the order of its examples.
func (m *MediaType) UnmarshalYAML(node *yaml.Node) error {
	node = unwrapNode(node)

	type plain MediaType
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*m = MediaType(p)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, unwrapNode(node.Content[i+1])
		switch key {
		case "example":
			v, err := nodeValue(val)
			if err != nil {
				return fmt.Errorf("openapi: example: %w", err)
			}
			m.Example = v
		case "examples":
			m.ExampleOrder = mappingKeys(val)
		}
	}
	return nil
}

// UnmarshalJSON decodes a media type through the YAML node path.
func (m *MediaType) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("openapi: decode media type: %w", err)
	}
	return m.UnmarshalYAML(&node)
}

// UnmarshalYAML decodes an example object, keeping object values ordered.
func (e *Example) UnmarshalYAML(node *yaml.Node) error {
	node = unwrapNode(node)

	type plain Example
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Example(p)

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "value" {
			continue
		}
		v, err := nodeValue(unwrapNode(node.Content[i+1]))
		if err != nil {
			return fmt.Errorf("openapi: example value: %w", err)
		}
		e.Value = v
	}
	return nil
}

// exclusiveBound decodes exclusiveMinimum or exclusiveMaximum. The OpenAPI
// 3.0 boolean form turns the inclusive bound into the exclusive one.
func exclusiveBound(node *yaml.Node, inclusive **float64) (*float64, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!bool" {
		var flag bool
		if err := node.Decode(&flag); err != nil {
			return nil, err
		}
		if !flag || *inclusive == nil {
			return nil, nil
		}
		bound := *inclusive
		*inclusive = nil
		return bound, nil
	}

	var bound float64
	if err := node.Decode(&bound); err != nil {
		return nil, err
	}
	return &bound, nil
}

func unwrapNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}
	return node
}

func mappingKeys(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

func sequenceValues(node *yaml.Node) ([]any, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence", node.Line)
	}
	out := make([]any, 0, len(node.Content))
	for _, item := range node.Content {
		v, err := nodeValue(unwrapNode(item))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// schemaExamples accepts the JSON Schema array form and the map form some
// authors write by analogy with media type examples.
func schemaExamples(node *yaml.Node) ([]any, error) {
	if node.Kind != yaml.MappingNode {
		return sequenceValues(node)
	}

	var out []any
	for i := 0; i+1 < len(node.Content); i += 2 {
		var ex Example
		if err := ex.UnmarshalYAML(node.Content[i+1]); err != nil {
			return nil, err
		}
		out = append(out, ex.Value)
	}
	return out, nil
}

// nodeValue converts a YAML node into plain values with ordered objects.
func nodeValue(node *yaml.Node) (any, error) {
	node = unwrapNode(node)
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		return sequenceValues(node)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(node.Content[i].Value, v)
		}
		return obj, nil
	case yaml.DocumentNode:
		return nil, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}
