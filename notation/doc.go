// Package notation turns resolved schemas into display structures for
// documentation renderers.
//
// Describe flattens one primitive schema into a TypeDescriptor: a type
// label, constraint phrases, allowed values and visibility markers. Compile
// walks a whole schema and returns a Node tree whose leaves are descriptors:
//
//	tree := notation.Compile(schema, notation.Options{})
//	for _, f := range tree.Fields {
//	    fmt.Println(f.Key, f.Node.Kind)
//	}
//
// Alternatives from oneOf, anyOf and multi-valued type lists are kept as
// Compositions whose options carry 1-based indexes. Composition.Label and
// Option.Label render the "::ONE~OF" and "::OPTION~1~Title" keys that older
// renderers expect.
//
// Both functions are pure: they read the schema, never modify it and keep
// no state between calls.
package notation
