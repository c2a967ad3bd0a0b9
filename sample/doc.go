// Package sample synthesizes example values from resolved schemas.
//
// Primitive picks one value for a scalar schema: an author example or
// default when present, otherwise a value derived from const, enum, numeric
// bounds, pattern or format. Synthesize walks a whole schema:
//
//	samples := sample.Synthesize(schema, sample.DefaultConfig())
//
// allOf branches are merged before walking. oneOf and anyOf alternatives are
// each expanded and the results de-duplicated. Objects fan out over their
// properties, combining up to MaxCandidatesPerProperty values per property
// into at most MaxSamples objects, so a few alternatives deep in a schema
// yield a handful of distinct examples instead of a combinatorial explosion.
//
// # XML
//
// With Config.XML set, each sample is a []xmlfmt.Node ready for xmlfmt.Render.
// The xml keywords of the schema decide element names, attributes,
// namespaces and array wrapping. The top-level element is named after the
// root schema's xml.name, its title, or "root".
//
// See: https://spec.openapis.org/oas/v3.1.0#xml-object
//
// # Determinism
//
// Pattern-based strings come from a generator seeded with a constant, uuid
// values are name-based and properties are visited in declaration order, so
// repeated calls return equal samples.
package sample
