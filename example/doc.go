// Package example picks the examples shown for a request or response body.
//
// Author examples always win over synthesized ones. For JSON media types,
// string examples are parsed as JSON, tolerating unquoted keys and single
// quotes:
//
//	records := example.FromMediaType("application/json", mt, example.Options{
//		IncludeReadOnly: true,
//		Output:          example.OutputText,
//	})
//
// When a body has no author examples, samples are synthesized from its
// schema. XML media types get rendered documents with an XML declaration.
package example
