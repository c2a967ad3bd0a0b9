package sample

import (
	"fmt"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/schemadoc/openapi"
	"github.com/vitalvas/schemadoc/xmlfmt"
)

const petSchema = `{
	"type": "object",
	"required": ["name", "photoUrls"],
	"properties": {
		"id": {"type": "integer", "format": "int64"},
		"category": {
			"type": "object",
			"properties": {
				"id": {"type": "integer", "format": "int64"},
				"name": {"type": "string"}
			},
			"xml": {"name": "Category"}
		},
		"name": {"type": "string", "example": "doggie"},
		"photoUrls": {
			"type": "array",
			"xml": {"wrapped": true},
			"items": {"type": "string", "xml": {"name": "photoUrl"}}
		},
		"tags": {
			"type": "array",
			"xml": {"wrapped": true},
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "integer", "format": "int64"},
					"name": {"type": "string"}
				},
				"xml": {"name": "Tag"}
			}
		},
		"status": {
			"type": "string",
			"description": "pet status in the store",
			"enum": ["available", "pending", "sold"]
		}
	},
	"xml": {"name": "Pet"}
}`

func encode(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestSynthesizeJSON(t *testing.T) {
	t.Run("pet object", func(t *testing.T) {
		samples := Synthesize(parse(t, petSchema), DefaultConfig())
		require.Len(t, samples, 1)
		assert.Equal(t,
			`{"id":0,"category":{"id":0,"name":"name"},"name":"doggie","photoUrls":["photoUrls"],"tags":[{"id":0,"name":"name"}],"status":"available"}`,
			encode(t, samples[0].Value))
	})

	t.Run("primitive root", func(t *testing.T) {
		samples := Synthesize(&openapi.Schema{Type: openapi.TypeString("integer"), Minimum: ptr(5.0), MultipleOf: ptr(3.0)}, DefaultConfig())
		require.Len(t, samples, 1)
		assert.Equal(t, int64(6), samples[0].Value)
	})

	t.Run("array wraps item candidates", func(t *testing.T) {
		samples := Synthesize(parse(t, `{"type":"array","items":{"oneOf":[{"type":"string"},{"type":"boolean"}]}}`), DefaultConfig())
		require.Len(t, samples, 1)
		assert.Equal(t, []any{"string", false}, samples[0].Value)
	})

	t.Run("explicit object example wins", func(t *testing.T) {
		samples := Synthesize(parse(t, `{"type":"object","properties":{"a":{"type":"string"}},"example":{"a":"given"}}`), DefaultConfig())
		require.Len(t, samples, 1)
		assert.Equal(t, `{"a":"given"}`, encode(t, samples[0].Value))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, Synthesize(nil, DefaultConfig()))
	})
}

func TestSynthesizeVisibility(t *testing.T) {
	s := parse(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "integer", "readOnly": true},
			"password": {"type": "string", "writeOnly": true},
			"legacy": {"type": "string", "deprecated": true},
			"name": {"type": "string"}
		}
	}`)

	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{"defaults keep both", DefaultConfig(), `{"id":0,"password":"password","name":"name"}`},
		{"request body view", Config{IncludeWriteOnly: true}, `{"password":"password","name":"name"}`},
		{"response view", Config{IncludeReadOnly: true}, `{"id":0,"name":"name"}`},
		{"skip strings", Config{SkipExampleStrings: true}, `{"name":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := Synthesize(s, tt.cfg)
			require.Len(t, samples, 1)
			assert.Equal(t, tt.expected, encode(t, samples[0].Value))
		})
	}
}

func TestSynthesizeComposition(t *testing.T) {
	t.Run("allOf merges branches", func(t *testing.T) {
		samples := Synthesize(parse(t, `{
			"allOf": [
				{"type": "object", "properties": {"id": {"type": "integer"}, "kind": {"type": "string"}}},
				{"properties": {"kind": {"type": "string", "enum": ["dog"]}, "age": {"type": "integer", "minimum": 1}}}
			]
		}`), DefaultConfig())

		require.Len(t, samples, 1)
		assert.Equal(t, `{"id":0,"kind":"dog","age":1}`, encode(t, samples[0].Value))
	})

	t.Run("oneOf expands and labels alternatives", func(t *testing.T) {
		samples := Synthesize(parse(t, `{
			"type": "object",
			"properties": {"kind": {"type": "string"}},
			"oneOf": [
				{"title": "Cat", "properties": {"lives": {"type": "integer", "minimum": 9}}},
				{"title": "Dog", "description": "good", "properties": {"bark": {"type": "boolean"}}}
			]
		}`), DefaultConfig())

		require.Len(t, samples, 2)
		assert.Equal(t, "Cat", samples[0].Title)
		assert.Equal(t, `{"kind":"kind","lives":9}`, encode(t, samples[0].Value))
		assert.Equal(t, "Dog", samples[1].Title)
		assert.Equal(t, "good", samples[1].Description)
		assert.Equal(t, `{"kind":"kind","bark":false}`, encode(t, samples[1].Value))
	})

	t.Run("duplicates removed in first-seen order", func(t *testing.T) {
		samples := Synthesize(parse(t, `{"anyOf": [
			{"type": "string", "example": "a"},
			{"type": "string", "example": "b"},
			{"type": "string", "example": "a"}
		]}`), DefaultConfig())

		values := make([]any, 0, len(samples))
		for _, s := range samples {
			values = append(values, s.Value)
		}
		assert.Equal(t, []any{"a", "b"}, values)
	})

	t.Run("cycle yields the reference name", func(t *testing.T) {
		samples := Synthesize(parse(t, `{
			"type": "object",
			"properties": {"parent": {"circularReference": {"name": "Node"}}}
		}`), DefaultConfig())
		assert.Equal(t, `{"parent":"Node"}`, encode(t, samples[0].Value))
	})

	t.Run("additional properties", func(t *testing.T) {
		samples := Synthesize(parse(t, `{"type":"object","additionalProperties":{"type":"integer"}}`), DefaultConfig())
		assert.Equal(t, `{"additionalProp1":0}`, encode(t, samples[0].Value))
	})
}

func TestSynthesizeFanOutCap(t *testing.T) {
	var props []string
	for i := range 12 {
		props = append(props, fmt.Sprintf(`"p%02d": {"oneOf": [{"type": "string"}, {"type": "integer"}, {"type": "boolean"}]}`, i))
	}
	s := parse(t, `{"type": "object", "properties": {`+strings.Join(props, ",")+`}}`)

	samples := Synthesize(s, DefaultConfig())
	assert.Len(t, samples, MaxSamples)

	seen := map[string]bool{}
	for _, smp := range samples {
		obj, ok := smp.Value.(*openapi.Object)
		require.True(t, ok)
		assert.Equal(t, 12, obj.Len())
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			_, isBool := pair.Value.(bool)
			assert.False(t, isBool, "third alternative is beyond the per-property cap")
		}
		seen[encode(t, obj)] = true
	}
	assert.Len(t, seen, MaxSamples, "fan-out samples are distinct")

	t.Run("deterministic", func(t *testing.T) {
		again := Synthesize(s, DefaultConfig())
		require.Len(t, again, len(samples))
		for i := range samples {
			assert.Equal(t, encode(t, samples[i].Value), encode(t, again[i].Value))
		}
	})
}

func TestSynthesizeXML(t *testing.T) {
	render := func(t *testing.T, s *openapi.Schema) string {
		t.Helper()
		samples := Synthesize(s, Config{IncludeReadOnly: true, IncludeWriteOnly: true, XML: true})
		require.NotEmpty(t, samples)
		nodes, ok := samples[0].Value.([]xmlfmt.Node)
		require.True(t, ok)
		return xmlfmt.Render(nodes, xmlfmt.Options{Indent: "  "})
	}

	t.Run("pet", func(t *testing.T) {
		expected := `<Pet>
  <id>0</id>
  <Category>
    <id>0</id>
    <name>name</name>
  </Category>
  <name>doggie</name>
  <photoUrls>
    <photoUrl>photoUrl</photoUrl>
  </photoUrls>
  <tags>
    <Tag>
      <id>0</id>
      <name>name</name>
    </Tag>
  </tags>
  <status>available</status>
</Pet>`
		assert.Equal(t, expected, render(t, parse(t, petSchema)))
	})

	t.Run("root name falls back to title then root", func(t *testing.T) {
		assert.Equal(t, "<Order>\n  <id>0</id>\n</Order>",
			render(t, parse(t, `{"title":"Order","type":"object","properties":{"id":{"type":"integer"}}}`)))
		assert.Equal(t, "<root>\n  <id>0</id>\n</root>",
			render(t, parse(t, `{"type":"object","properties":{"id":{"type":"integer"}}}`)))
	})

	t.Run("attributes namespaces and prefixes", func(t *testing.T) {
		s := parse(t, `{
			"type": "object",
			"xml": {"name": "book", "namespace": "http://example.com/schema", "prefix": "bk"},
			"properties": {
				"id": {"type": "integer", "xml": {"attribute": true}},
				"lang": {"type": "string", "enum": ["en"], "xml": {"attribute": true, "name": "xml:lang"}},
				"title": {"type": "string", "xml": {"prefix": "bk"}}
			}
		}`)
		assert.Equal(t,
			"<bk:book xmlns:bk=\"http://example.com/schema\" id=\"0\" xml:lang=\"en\">\n  <bk:title>title</bk:title>\n</bk:book>",
			render(t, s))
	})

	t.Run("default namespace", func(t *testing.T) {
		s := parse(t, `{"type":"object","xml":{"name":"a","namespace":"urn:x"},"properties":{}}`)
		assert.Equal(t, `<a xmlns="urn:x"></a>`, render(t, s))
	})

	t.Run("unwrapped array repeats items", func(t *testing.T) {
		s := parse(t, `{
			"type": "object",
			"xml": {"name": "Pet"},
			"properties": {
				"photoUrls": {"type": "array", "items": {"type": "string", "xml": {"name": "photoUrl"}}},
				"aliases": {"type": "array", "xml": {"name": "alias"}, "items": {"type": "string"}},
				"tags": {"type": "array", "items": {"type": "string"}}
			}
		}`)
		assert.Equal(t,
			"<Pet>\n  <photoUrl>photoUrl</photoUrl>\n  <alias>alias</alias>\n  <tags>tags</tags>\n</Pet>",
			render(t, s))
	})

	t.Run("wrapped array item name inherits property name", func(t *testing.T) {
		s := parse(t, `{
			"type": "object",
			"xml": {"name": "Pet"},
			"properties": {
				"tags": {"type": "array", "xml": {"wrapped": true, "name": "tagList"}, "items": {"type": "string"}}
			}
		}`)
		assert.Equal(t, "<Pet>\n  <tagList>\n    <tags>tags</tags>\n  </tagList>\n</Pet>", render(t, s))
	})

	t.Run("primitive root", func(t *testing.T) {
		assert.Equal(t, "<root>root</root>", render(t, parse(t, `{"type":"string"}`)))
	})

	t.Run("object example converted to elements", func(t *testing.T) {
		s := parse(t, `{"type":"object","xml":{"name":"a"},"properties":{"x":{}},"example":{"b":1,"c":[2,3]}}`)
		assert.Equal(t, "<a>\n  <b>1</b>\n  <c>2</c>\n  <c>3</c>\n</a>", render(t, s))
	})

	t.Run("oneOf root yields one sample per alternative", func(t *testing.T) {
		samples := Synthesize(parse(t, `{"xml":{"name":"v"},"oneOf":[{"type":"string"},{"type":"integer"}]}`),
			Config{XML: true})
		require.Len(t, samples, 2)
		assert.Equal(t, "<v>v</v>", xmlfmt.Render(samples[0].Value.([]xmlfmt.Node), xmlfmt.Options{}))
		assert.Equal(t, "<v>0</v>", xmlfmt.Render(samples[1].Value.([]xmlfmt.Node), xmlfmt.Options{}))
	})
}
