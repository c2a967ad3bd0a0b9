package openapi

import (
	"reflect"
	"slices"
	"sort"
)

// OrderedKeys returns the keys of m in a stable order: names listed in order
// that exist in m come first, in that order, followed by the remaining keys
// sorted lexically. Duplicate names in order are visited once.
func OrderedKeys[V any](m map[string]V, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))

	for _, name := range order {
		if _, ok := m[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		keys = append(keys, name)
	}

	rest := make([]string, 0, len(m)-len(keys))
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

// PropertyNames returns property names in declaration order.
func (s *Schema) PropertyNames() []string {
	return OrderedKeys(s.Properties, s.PropertyOrder)
}

// PatternPropertyNames returns patternProperties keys in declaration order.
func (s *Schema) PatternPropertyNames() []string {
	return OrderedKeys(s.PatternProperties, s.PatternPropertyOrder)
}

// IsCycle reports whether the schema is an upstream cycle sentinel.
func (s *Schema) IsCycle() bool {
	return s.CircularReference != nil
}

// IsRequired reports whether name is listed in required.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// IsEmpty reports whether the schema carries no keywords at all ({}).
func (s *Schema) IsEmpty() bool {
	return reflect.ValueOf(*s).IsZero()
}

// HasComposition reports whether any of allOf, oneOf or anyOf is present.
func (s *Schema) HasComposition() bool {
	return len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0
}

// HasObjectShape reports whether the schema is typed object or declares
// properties.
func (s *Schema) HasObjectShape() bool {
	return s.Type.Is("object") || s.Properties != nil
}

// HasArrayShape reports whether the schema is typed array or declares items.
func (s *Schema) HasArrayShape() bool {
	return s.Type.Is("array") || s.Items != nil
}

// IsPrimitive reports whether the schema is a scalar leaf: no composition,
// no object or array shape, and at most one declared type.
func (s *Schema) IsPrimitive() bool {
	return !s.HasComposition() && !s.HasObjectShape() && !s.HasArrayShape() && !s.Type.IsMulti()
}

// BaseType returns the first declared type other than null. A schema typed
// only null returns "null"; an untyped schema returns "".
func (s *Schema) BaseType() string {
	for _, t := range s.Type.Values() {
		if t != "null" {
			return t
		}
	}
	if s.Type.Has("null") {
		return "null"
	}
	return ""
}

// Clone returns a shallow copy of the schema with its own slices and maps.
// Subschemas are shared; callers never mutate them.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}

	out := *s
	out.Type = TypeArray(slices.Clone(s.Type.Values())...)
	out.Examples = slices.Clone(s.Examples)
	out.Enum = slices.Clone(s.Enum)
	out.Required = slices.Clone(s.Required)
	out.PropertyOrder = slices.Clone(s.PropertyOrder)
	out.PatternPropertyOrder = slices.Clone(s.PatternPropertyOrder)
	out.AllOf = slices.Clone(s.AllOf)
	out.OneOf = slices.Clone(s.OneOf)
	out.AnyOf = slices.Clone(s.AnyOf)
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v
		}
	}
	if s.PatternProperties != nil {
		out.PatternProperties = make(map[string]*Schema, len(s.PatternProperties))
		for k, v := range s.PatternProperties {
			out.PatternProperties[k] = v
		}
	}
	return &out
}

// Merge returns a new schema holding base with overlay applied on top.
// Scalar keywords set in overlay win. Properties and patternProperties
// present in both are merged recursively. Required is the ordered union.
// Boolean flags are combined with OR. Composition lists, items and xml
// from overlay replace those of base when present. Neither input is modified.
func Merge(base, overlay *Schema) *Schema {
	switch {
	case base == nil:
		return overlay.Clone()
	case overlay == nil:
		return base.Clone()
	}

	out := base.Clone()

	if !overlay.Type.IsEmpty() {
		out.Type = TypeArray(slices.Clone(overlay.Type.Values())...)
	}
	if overlay.Ref != "" {
		out.Ref = overlay.Ref
	}
	if overlay.Format != "" {
		out.Format = overlay.Format
	}
	if overlay.Title != "" {
		out.Title = overlay.Title
	}
	if overlay.Description != "" {
		out.Description = overlay.Description
	}
	if overlay.Pattern != "" {
		out.Pattern = overlay.Pattern
	}
	if overlay.Default != nil {
		out.Default = overlay.Default
	}
	if overlay.Example != nil {
		out.Example = overlay.Example
	}
	if overlay.Examples != nil {
		out.Examples = slices.Clone(overlay.Examples)
	}
	if overlay.Enum != nil {
		out.Enum = slices.Clone(overlay.Enum)
	}
	if overlay.Const != nil {
		out.Const = overlay.Const
	}

	out.Nullable = out.Nullable || overlay.Nullable
	out.Deprecated = out.Deprecated || overlay.Deprecated
	out.ReadOnly = out.ReadOnly || overlay.ReadOnly
	out.WriteOnly = out.WriteOnly || overlay.WriteOnly
	out.UniqueItems = out.UniqueItems || overlay.UniqueItems

	mergeFloat(&out.MultipleOf, overlay.MultipleOf)
	mergeFloat(&out.Minimum, overlay.Minimum)
	mergeFloat(&out.Maximum, overlay.Maximum)
	mergeFloat(&out.ExclusiveMinimum, overlay.ExclusiveMinimum)
	mergeFloat(&out.ExclusiveMaximum, overlay.ExclusiveMaximum)
	mergeInt(&out.MinLength, overlay.MinLength)
	mergeInt(&out.MaxLength, overlay.MaxLength)
	mergeInt(&out.MinItems, overlay.MinItems)
	mergeInt(&out.MaxItems, overlay.MaxItems)

	if overlay.Items != nil {
		out.Items = Merge(base.Items, overlay.Items)
	}
	if overlay.AdditionalProperties != nil {
		out.AdditionalProperties = overlay.AdditionalProperties
	}
	if overlay.XML != nil {
		out.XML = overlay.XML
	}
	if overlay.CircularReference != nil {
		out.CircularReference = overlay.CircularReference
	}
	if overlay.AllOf != nil {
		out.AllOf = slices.Clone(overlay.AllOf)
	}
	if overlay.OneOf != nil {
		out.OneOf = slices.Clone(overlay.OneOf)
	}
	if overlay.AnyOf != nil {
		out.AnyOf = slices.Clone(overlay.AnyOf)
	}

	out.Properties, out.PropertyOrder = mergeProperties(
		out.Properties, out.PropertyNames(), overlay.Properties, overlay.PropertyNames())
	out.PatternProperties, out.PatternPropertyOrder = mergeProperties(
		out.PatternProperties, out.PatternPropertyNames(), overlay.PatternProperties, overlay.PatternPropertyNames())

	for _, name := range overlay.Required {
		if !slices.Contains(out.Required, name) {
			out.Required = append(out.Required, name)
		}
	}

	return out
}

func mergeProperties(base map[string]*Schema, baseOrder []string, overlay map[string]*Schema, overlayOrder []string) (map[string]*Schema, []string) {
	if overlay == nil {
		return base, baseOrder
	}

	out := make(map[string]*Schema, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	order := slices.Clone(baseOrder)

	for _, name := range overlayOrder {
		if existing, ok := out[name]; ok {
			out[name] = Merge(existing, overlay[name])
			continue
		}
		out[name] = overlay[name]
		order = append(order, name)
	}
	return out, order
}

func mergeFloat(dst **float64, src *float64) {
	if src != nil {
		*dst = src
	}
}

func mergeInt(dst **int, src *int) {
	if src != nil {
		*dst = src
	}
}
