package sample

import (
	"math"

	"github.com/google/uuid"

	"github.com/vitalvas/schemadoc/openapi"
)

// Epsilon offsets an exclusive lower bound on number schemas.
const Epsilon = 0.001

// formatLiterals holds the canonical sample for each known string format.
var formatLiterals = map[string]string{
	"url":           "http://example.com",
	"uri":           "http://example.com",
	"uri-reference": "http://example.com",
	"iri":           "http://example.com",
	"date":          "1970-01-01",
	"time":          "00:00:00Z",
	"date-time":     "1970-01-01T00:00:00Z",
	"duration":      "P3Y6M4DT12H30M5S",
	"email":         "user@example.com",
	"idn-email":     "user@example.com",
	"hostname":      "www.example.com",
	"idn-hostname":  "www.example.com",
	"ipv4":          "198.51.100.42",
	"ipv6":          "2001:db8:5b96::426f:8e17:642a",
	"byte":          "ZXhhbXBsZQ==",
	"binary":        "<binary>",
}

// Primitive returns one sample value for a scalar schema. fallbackName
// labels string samples when nothing better is known, and skipExampleStrings
// blanks string-valued samples so callers get the shape without literals.
//
// The first applicable rule wins: example, default, empty schema, cycle
// sentinel, const, enum, numeric bounds, boolean, null, then strings from
// pattern, format or the fallback name.
func Primitive(s *openapi.Schema, fallbackName string, skipExampleStrings bool) any {
	if s == nil {
		return ""
	}

	if v, ok := explicitExample(s); ok {
		if _, isString := v.(string); isString && skipExampleStrings {
			return ""
		}
		return v
	}
	if s.Default != nil {
		return s.Default
	}
	if s.IsEmpty() {
		return ""
	}
	if s.IsCycle() {
		return s.CircularReference.Name
	}
	if s.Const != nil {
		return s.Const
	}
	if len(s.Enum) > 0 {
		return s.Enum[0]
	}

	switch s.BaseType() {
	case "integer":
		return toInt64(numeric(s, true))
	case "number":
		return numeric(s, false)
	case "boolean":
		return false
	case "null":
		return nil
	}

	return stringSample(s, fallbackName, skipExampleStrings)
}

func explicitExample(s *openapi.Schema) (any, bool) {
	if len(s.Examples) > 0 {
		return s.Examples[0], true
	}
	if s.Example != nil {
		return s.Example, true
	}
	return nil, false
}

// toInt64 converts f, saturating at the int64 range.
func toInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// numeric returns the smallest value satisfying the lower bound and
// multipleOf. Without a lower bound the base is 0, or the maximum when the
// maximum is negative.
func numeric(s *openapi.Schema, integer bool) float64 {
	var base float64
	switch {
	case s.Minimum != nil:
		base = *s.Minimum
	case s.ExclusiveMinimum != nil:
		if integer {
			base = math.Floor(*s.ExclusiveMinimum) + 1
		} else {
			base = *s.ExclusiveMinimum + Epsilon
		}
	case s.Maximum != nil && *s.Maximum < 0:
		base = *s.Maximum
	case s.ExclusiveMaximum != nil && *s.ExclusiveMaximum < 0:
		if integer {
			base = math.Ceil(*s.ExclusiveMaximum) - 1
		} else {
			base = *s.ExclusiveMaximum - Epsilon
		}
	}

	if integer {
		base = math.Ceil(base)
	}

	if m := s.MultipleOf; m != nil && *m > 0 {
		base = math.Ceil(base / *m) * *m
	}
	return base
}

func stringSample(s *openapi.Schema, fallbackName string, skip bool) any {
	if skip {
		return ""
	}

	fallback := fallbackName
	if fallback == "" {
		fallback = "string"
	}

	if s.Pattern != "" {
		return fromPattern(s.Pattern, fallback)
	}

	switch s.Format {
	case "":
		return fallback
	case "uuid":
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fallback)).String()
	}
	if lit, ok := formatLiterals[s.Format]; ok {
		return lit
	}
	return s.Format
}
