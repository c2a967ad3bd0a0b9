package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	t.Run("JSON keeps property order", func(t *testing.T) {
		s, err := ParseSchema([]byte(`{
			"type": "object",
			"required": ["zeta"],
			"properties": {
				"zeta": {"type": "string"},
				"alpha": {"type": "integer", "minimum": 5},
				"mid": {"type": "boolean"}
			}
		}`))
		require.NoError(t, err)

		assert.Equal(t, []string{"zeta", "alpha", "mid"}, s.PropertyNames())
		assert.True(t, s.IsRequired("zeta"))
		require.NotNil(t, s.Properties["alpha"].Minimum)
		assert.InDelta(t, 5.0, *s.Properties["alpha"].Minimum, 0)
	})

	t.Run("YAML keeps pattern property order", func(t *testing.T) {
		s, err := ParseSchema([]byte(`
type: object
patternProperties:
  "^x-": {type: string}
  "^a-": {type: integer}
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"^x-", "^a-"}, s.PatternPropertyNames())
	})

	t.Run("values decode ordered", func(t *testing.T) {
		s, err := ParseSchema([]byte(`{
			"type": "object",
			"example": {"b": 1, "a": [true, null]},
			"default": "x",
			"enum": [{"k": "v"}, 2],
			"const": 1.5
		}`))
		require.NoError(t, err)

		obj, ok := s.Example.(*Object)
		require.True(t, ok)
		var keys []string
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
		assert.Equal(t, []string{"b", "a"}, keys)

		a, _ := obj.Get("a")
		assert.Equal(t, []any{true, nil}, a)

		assert.Equal(t, "x", s.Default)
		require.Len(t, s.Enum, 2)
		assert.IsType(t, &Object{}, s.Enum[0])
		assert.Equal(t, 2, s.Enum[1])
		assert.Equal(t, 1.5, s.Const)
	})

	t.Run("examples as list or map", func(t *testing.T) {
		s, err := ParseSchema([]byte(`{"examples": ["a", "b"]}`))
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, s.Examples)

		s, err = ParseSchema([]byte(`{"examples": {"first": {"value": "a"}, "second": {"value": "b"}}}`))
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, s.Examples)
	})

	t.Run("nested subschemas", func(t *testing.T) {
		s, err := ParseSchema([]byte(`{
			"allOf": [{"properties": {"b": {}, "a": {}}}],
			"items": {"properties": {"y": {}, "x": {}}},
			"circularReference": {"name": "Node", "$ref": "#/components/schemas/Node"}
		}`))
		require.NoError(t, err)

		assert.Equal(t, []string{"b", "a"}, s.AllOf[0].PropertyNames())
		assert.Equal(t, []string{"y", "x"}, s.Items.PropertyNames())
		assert.True(t, s.IsCycle())
		assert.Equal(t, "Node", s.CircularReference.Name)
	})

	t.Run("exclusive bounds", func(t *testing.T) {
		s, err := ParseSchema([]byte(`
type: object
properties:
  legacy: {type: integer, minimum: 0, exclusiveMinimum: true, maximum: 10, exclusiveMaximum: true}
  inclusive: {type: integer, minimum: 1, exclusiveMinimum: false}
  numeric: {type: number, exclusiveMinimum: 2.5, maximum: 9}
  dangling: {type: number, exclusiveMaximum: true}
`))
		require.NoError(t, err)

		legacy := s.Properties["legacy"]
		assert.Nil(t, legacy.Minimum)
		assert.Nil(t, legacy.Maximum)
		require.NotNil(t, legacy.ExclusiveMinimum)
		require.NotNil(t, legacy.ExclusiveMaximum)
		assert.InDelta(t, 0.0, *legacy.ExclusiveMinimum, 0)
		assert.InDelta(t, 10.0, *legacy.ExclusiveMaximum, 0)

		inclusive := s.Properties["inclusive"]
		require.NotNil(t, inclusive.Minimum)
		assert.InDelta(t, 1.0, *inclusive.Minimum, 0)
		assert.Nil(t, inclusive.ExclusiveMinimum)

		numeric := s.Properties["numeric"]
		require.NotNil(t, numeric.ExclusiveMinimum)
		assert.InDelta(t, 2.5, *numeric.ExclusiveMinimum, 0)
		require.NotNil(t, numeric.Maximum)

		assert.Nil(t, s.Properties["dangling"].ExclusiveMaximum)

		_, err = ParseSchema([]byte(`{"exclusiveMinimum": "zero"}`))
		assert.Error(t, err)
	})

	t.Run("boolean schema", func(t *testing.T) {
		s, err := ParseSchema([]byte(`{"items": true}`))
		require.NoError(t, err)
		require.NotNil(t, s.Items)
		assert.True(t, s.Items.IsEmpty())
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParseSchema([]byte("  \n"))
		assert.ErrorIs(t, err, ErrEmptyInput)

		_, err = ParseSchema([]byte(`[1, 2]`))
		assert.ErrorIs(t, err, ErrInvalidSchema)

		_, err = ParseSchema([]byte(`{"properties": {"a": "nope"}}`))
		assert.Error(t, err)
	})
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`
openapi: 3.1.0
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name: {type: string}
            examples:
              second: {summary: Second, value: {name: rex}}
              first: {value: '{name: "tom"}'}
      responses:
        "201":
          description: Created
          content:
            application/json:
              example: {id: 1}
components:
  schemas:
    Pet:
      type: object
      properties:
        id: {type: integer}
`))
	require.NoError(t, err)

	assert.Equal(t, "Pets", doc.Info.Title)
	require.Contains(t, doc.Components.Schemas, "Pet")

	op := doc.Paths["/pets"].Post
	require.NotNil(t, op)
	assert.Equal(t, "createPet", op.OperationID)

	mt := op.RequestBody.Content["application/json"]
	assert.Equal(t, []string{"second", "first"}, mt.ExampleOrder)
	assert.IsType(t, &Object{}, mt.Examples["second"].Value)
	assert.Equal(t, `{name: "tom"}`, mt.Examples["first"].Value)

	resp := op.Responses["201"].Content["application/json"]
	assert.IsType(t, &Object{}, resp.Example)

	t.Run("missing version", func(t *testing.T) {
		_, err := ParseDocument([]byte(`info: {title: x}`))
		assert.ErrorIs(t, err, ErrNotOpenAPI)
	})
}

func TestDecodeValue(t *testing.T) {
	t.Run("ordered object", func(t *testing.T) {
		v, err := DecodeValue([]byte(`{"z": 1, "a": {"y": "s", "b": false}}`))
		require.NoError(t, err)

		obj, ok := v.(*Object)
		require.True(t, ok)
		assert.Equal(t, "z", obj.Oldest().Key)

		data, err := obj.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"z":1,"a":{"y":"s","b":false}}`, string(data))
	})

	t.Run("scalars", func(t *testing.T) {
		v, err := DecodeValue([]byte(`"true"`))
		require.NoError(t, err)
		assert.Equal(t, "true", v)

		v, err = DecodeValue([]byte(`null`))
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("rejects non-JSON", func(t *testing.T) {
		_, err := DecodeValue([]byte(`{name: 'x'}`))
		assert.ErrorIs(t, err, ErrInvalidJSON)

		_, err = DecodeValue(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}
