package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaMarshalJSONKeepsOrder(t *testing.T) {
	t.Run("properties", func(t *testing.T) {
		s, err := ParseSchema([]byte(`{
			"type": "object",
			"properties": {
				"zeta": {"type": "string"},
				"alpha": {"type": "object", "properties": {"y": {"type": "integer"}, "x": {"type": "boolean"}}}
			},
			"patternProperties": {"^z": {"type": "string"}, "^a": {"type": "number"}}
		}`))
		require.NoError(t, err)

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t,
			`{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"object","properties":{"y":{"type":"integer"},"x":{"type":"boolean"}}}},"patternProperties":{"^z":{"type":"string"},"^a":{"type":"number"}}}`,
			string(data))
	})

	t.Run("without properties", func(t *testing.T) {
		data, err := json.Marshal(&Schema{Type: TypeString("string"), Example: "x"})
		require.NoError(t, err)
		assert.Equal(t, `{"type":"string","example":"x"}`, string(data))
	})

	t.Run("round trip", func(t *testing.T) {
		src := `{"type":"object","required":["b"],"properties":{"b":{"type":"string","example":"v"},"a":{"type":"array","items":{"type":"integer"}}}}`
		s, err := ParseSchema([]byte(src))
		require.NoError(t, err)

		data, err := json.Marshal(s)
		require.NoError(t, err)

		again, err := ParseSchema(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, again.PropertyOrder)
		assert.Equal(t, "v", again.Properties["b"].Example)
		assert.Equal(t, []string{"b"}, again.Required)
	})
}

func TestMediaTypeMarshalJSONKeepsOrder(t *testing.T) {
	var mt MediaType
	require.NoError(t, mt.UnmarshalJSON([]byte(`{
		"examples": {"second": {"value": 2}, "first": {"summary": "One", "value": 1}}
	}`)))

	data, err := json.Marshal(mt)
	require.NoError(t, err)
	assert.Equal(t, `{"examples":{"second":{"value":2},"first":{"summary":"One","value":1}}}`, string(data))
}
