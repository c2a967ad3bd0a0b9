// Package openapi models the OpenAPI v3.x and JSON Schema documents consumed by
// the notation and sample packages.
//
// Schemas arrive already resolved: every $ref has been inlined upstream and
// cycle points carry a CircularReference sentinel naming the referenced
// schema. Nothing in this module follows a $ref or detects cycles on its own.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
// See: https://json-schema.org/draft/2020-12/json-schema-validation
//
// # Decoding
//
// ParseSchema and ParseDocument accept JSON or YAML. Decoding walks yaml.v3
// nodes so the declaration order of properties, patternProperties and
// media type examples is recorded alongside the maps:
//
//	s, err := openapi.ParseSchema([]byte(`{"type":"object","properties":{"b":{},"a":{}}}`))
//	// s.PropertyNames() == []string{"b", "a"}
//
// Example, default, enum and const values that are JSON objects decode into
// *Object, an ordered map, so generated output keeps the author's key order.
// DecodeValue applies the same conversion to strict JSON text.
//
// Encoding goes the other way: Schema and MediaType marshal their
// properties, patternProperties and examples in the recorded order.
//
// # Merging
//
// Merge combines two schemas without modifying either. It backs allOf
// flattening and the shared-fields merge of oneOf/anyOf alternatives:
//
//	merged := openapi.Merge(base, overlay)
//
// Scalar keywords from the overlay win, same-name properties merge
// recursively and required lists are unioned.
//
// # Iteration Order
//
// Every walker visits properties through PropertyNames, which returns
// declared names first and any remaining map keys sorted. Output built from
// a schema is therefore independent of Go map iteration order.
package openapi
