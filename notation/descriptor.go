package notation

import (
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vitalvas/schemadoc/openapi"
)

// TypeSeparator joins type names and enum values in display labels.
// It cannot occur in a JSON Schema type or format name.
const TypeSeparator = "┃"

// Markers for ReadOrWriteOnly.
const (
	ReadOnlyMarker  = "🆁"
	WriteOnlyMarker = "🆆"
)

// Options configures Describe and Compile. The zero value hides null
// from type labels.
type Options struct {
	// IncludeNulls keeps "null" in type labels.
	IncludeNulls bool
}

// TypeDescriptor is the flat display record for a primitive schema.
type TypeDescriptor struct {
	Type            string   `json:"type" yaml:"type"`
	Format          string   `json:"format,omitempty" yaml:"format,omitempty"`
	CSSType         string   `json:"cssType" yaml:"cssType"`
	Pattern         string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	ReadOrWriteOnly string   `json:"readOrWriteOnly,omitempty" yaml:"readOrWriteOnly,omitempty"`
	Deprecated      bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Example         any      `json:"example,omitempty" yaml:"example,omitempty"`
	Default         string   `json:"default,omitempty" yaml:"default,omitempty"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	Constraints     []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	AllowedValues   string   `json:"allowedValues,omitempty" yaml:"allowedValues,omitempty"`
	ArrayType       string   `json:"arrayType,omitempty" yaml:"arrayType,omitempty"`
}

var primitiveTypes = []string{"string", "number", "integer", "boolean"}

// Describe builds the display descriptor for s. It never fails; absent
// keywords leave their fields empty. A nil schema returns nil.
func Describe(s *openapi.Schema, opts Options) *TypeDescriptor {
	if s == nil {
		return nil
	}

	if s.IsCycle() {
		return &TypeDescriptor{
			Type:        "{recursive: " + s.CircularReference.Name + "}",
			CSSType:     "recursive",
			Title:       s.Title,
			Description: s.Description,
		}
	}

	d := &TypeDescriptor{
		Type:            typeLabel(s, opts),
		Format:          s.Format,
		CSSType:         cssType(s),
		ReadOrWriteOnly: accessOf(s).Marker(),
		Deprecated:      s.Deprecated,
		Example:         exampleOf(s),
		Title:           s.Title,
		Description:     s.Description,
		Constraints:     constraints(s),
	}

	if len(s.Enum) == 0 {
		d.Pattern = strings.TrimSuffix(strings.TrimPrefix(s.Pattern, "^"), "$")
	}
	if s.Default != nil {
		d.Default = printable(s.Default)
	}
	d.AllowedValues = allowedValues(s)

	if isArrayOfPrimitive(s) && !s.Type.IsMulti() {
		item := Describe(s.Items, opts)
		d.ArrayType = "array of " + item.Type
		if s.Default == nil && s.Items.Default != nil {
			d.Default = printable(s.Items.Default)
		}
		if s.Const == nil && len(s.Enum) == 0 {
			d.AllowedValues = allowedValues(s.Items)
		}
		if d.Pattern == "" && len(s.Items.Enum) == 0 {
			d.Pattern = strings.TrimSuffix(strings.TrimPrefix(s.Items.Pattern, "^"), "$")
		}
	}

	return d
}

func typeLabel(s *openapi.Schema, opts Options) string {
	types := s.Type.Values()
	if len(types) == 0 && s.Const != nil {
		return "const"
	}

	var labels []string
	seen := make(map[string]bool, len(types))
	hasNull := false

	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true

		switch {
		case t == "null":
			hasNull = true
			if !opts.IncludeNulls {
				continue
			}
		case t == "array" && s.Type.IsMulti() && isArrayOfPrimitive(s):
			t = "[" + itemLabel(s.Items) + "]"
		case t == "string" || t == "number" || t == "integer":
			switch {
			case s.Const != nil:
				t = "const"
			case len(s.Enum) > 0:
				t += " enum"
			case s.Format != "":
				t = s.Format
			}
		}
		labels = append(labels, t)
	}

	if s.Nullable && !hasNull && opts.IncludeNulls {
		labels = append(labels, "null")
	}
	return strings.Join(dedupe(labels), TypeSeparator)
}

// itemLabel is the bracketed label body for a primitive array item.
func itemLabel(item *openapi.Schema) string {
	if item.Format != "" {
		return item.Format
	}
	return item.BaseType()
}

func cssType(s *openapi.Schema) string {
	switch base := s.BaseType(); {
	case base != "":
		return base
	case s.Const != nil:
		return "const"
	default:
		return "any"
	}
}

// isArrayOfPrimitive reports whether s is an array whose items carry a
// single primitive type. Only one level is considered.
func isArrayOfPrimitive(s *openapi.Schema) bool {
	if !s.Type.Has("array") || s.Items == nil {
		return false
	}
	item := s.Items
	if item.IsCycle() || item.HasComposition() || item.HasObjectShape() || item.HasArrayShape() {
		return false
	}
	types := item.Type.Values()
	return len(types) == 1 && slices.Contains(primitiveTypes, types[0])
}

func constraints(s *openapi.Schema) []string {
	var out []string

	if s.UniqueItems {
		out = append(out, "Unique items")
	}

	if r := rangeConstraint(s); r != "" {
		out = append(out, r)
	}

	if s.MultipleOf != nil {
		out = append(out, "Multiple of: "+formatNumber(*s.MultipleOf))
	}

	switch {
	case s.MinLength != nil && s.MaxLength != nil:
		out = append(out, "Min length: "+strconv.Itoa(*s.MinLength)+", Max length: "+strconv.Itoa(*s.MaxLength))
	case s.MinLength != nil:
		out = append(out, "Min length: "+strconv.Itoa(*s.MinLength))
	case s.MaxLength != nil:
		out = append(out, "Max length: "+strconv.Itoa(*s.MaxLength))
	}

	return out
}

// rangeConstraint renders numeric bounds as an interval. Inclusive bounds
// use square brackets, exclusive-only bounds use parentheses and a missing
// side is open at infinity.
func rangeConstraint(s *openapi.Schema) string {
	lower, upper := "(-∞", "∞)"

	switch {
	case s.Minimum != nil:
		lower = "[" + formatNumber(*s.Minimum)
	case s.ExclusiveMinimum != nil:
		lower = "(" + formatNumber(*s.ExclusiveMinimum)
	}

	switch {
	case s.Maximum != nil:
		upper = formatNumber(*s.Maximum) + "]"
	case s.ExclusiveMaximum != nil:
		upper = formatNumber(*s.ExclusiveMaximum) + ")"
	}

	if s.Minimum == nil && s.ExclusiveMinimum == nil && s.Maximum == nil && s.ExclusiveMaximum == nil {
		return ""
	}
	return "Range: " + lower + ", " + upper
}

func allowedValues(s *openapi.Schema) string {
	if s.Const != nil {
		return printable(s.Const)
	}
	if len(s.Enum) == 0 {
		return ""
	}
	values := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		values = append(values, printable(v))
	}
	return strings.Join(values, TypeSeparator)
}

func exampleOf(s *openapi.Schema) any {
	if len(s.Examples) > 0 {
		return s.Examples[0]
	}
	return s.Example
}

// printable renders a value for display: strings verbatim, everything
// else as compact JSON.
func printable(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func dedupe(labels []string) []string {
	out := labels[:0:0]
	for _, l := range labels {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}
