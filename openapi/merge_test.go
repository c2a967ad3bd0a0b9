package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestOrderedKeys(t *testing.T) {
	m := map[string]int{"c": 1, "a": 2, "b": 3, "d": 4}

	tests := []struct {
		name     string
		order    []string
		expected []string
	}{
		{"no order sorts", nil, []string{"a", "b", "c", "d"}},
		{"full order", []string{"d", "c", "b", "a"}, []string{"d", "c", "b", "a"}},
		{"partial order then sorted rest", []string{"c"}, []string{"c", "a", "b", "d"}},
		{"unknown and duplicate names skipped", []string{"x", "b", "b"}, []string{"b", "a", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OrderedKeys(m, tt.order))
		})
	}

	t.Run("stable across calls", func(t *testing.T) {
		first := OrderedKeys(m, nil)
		for range 20 {
			assert.Equal(t, first, OrderedKeys(m, nil))
		}
	})
}

func TestMerge(t *testing.T) {
	t.Run("nil sides", func(t *testing.T) {
		s := &Schema{Title: "x"}
		assert.Equal(t, "x", Merge(nil, s).Title)
		assert.Equal(t, "x", Merge(s, nil).Title)
		assert.NotSame(t, s, Merge(s, nil))
		assert.Nil(t, Merge(nil, nil))
	})

	t.Run("overlay scalars win", func(t *testing.T) {
		base := &Schema{Type: TypeString("string"), Title: "base", Format: "email", Minimum: ptr(1.0)}
		overlay := &Schema{Title: "overlay", Minimum: ptr(2.0), ReadOnly: true}

		out := Merge(base, overlay)
		assert.True(t, out.Type.Is("string"))
		assert.Equal(t, "overlay", out.Title)
		assert.Equal(t, "email", out.Format)
		assert.InDelta(t, 2.0, *out.Minimum, 0)
		assert.True(t, out.ReadOnly)
	})

	t.Run("properties deep merge", func(t *testing.T) {
		base := &Schema{
			Properties: map[string]*Schema{
				"id":   {Type: TypeString("integer")},
				"name": {Type: TypeString("string")},
			},
			PropertyOrder: []string{"id", "name"},
			Required:      []string{"id"},
		}
		overlay := &Schema{
			Properties: map[string]*Schema{
				"name": {Description: "display name"},
				"tag":  {Type: TypeString("string")},
			},
			PropertyOrder: []string{"tag", "name"},
			Required:      []string{"name", "id"},
		}

		out := Merge(base, overlay)
		assert.Equal(t, []string{"id", "name", "tag"}, out.PropertyNames())
		assert.Equal(t, []string{"id", "name"}, out.Required)
		assert.True(t, out.Properties["name"].Type.Is("string"))
		assert.Equal(t, "display name", out.Properties["name"].Description)

		assert.Len(t, base.Properties, 2, "base must not be modified")
		assert.Empty(t, base.Properties["name"].Description)
		assert.Equal(t, []string{"id"}, base.Required)
	})

	t.Run("items merge", func(t *testing.T) {
		base := &Schema{Items: &Schema{Type: TypeString("string")}}
		overlay := &Schema{Items: &Schema{ReadOnly: true}}

		out := Merge(base, overlay)
		assert.True(t, out.Items.Type.Is("string"))
		assert.True(t, out.Items.ReadOnly)
		assert.False(t, base.Items.ReadOnly)
	})

	t.Run("composition replaced", func(t *testing.T) {
		base := &Schema{OneOf: []*Schema{{Title: "a"}}}
		overlay := &Schema{AnyOf: []*Schema{{Title: "b"}}}

		out := Merge(base, overlay)
		require.Len(t, out.OneOf, 1)
		require.Len(t, out.AnyOf, 1)
		assert.Equal(t, "b", out.AnyOf[0].Title)
	})
}

func TestSchemaClassification(t *testing.T) {
	tests := []struct {
		name      string
		schema    *Schema
		object    bool
		array     bool
		primitive bool
		base      string
	}{
		{"empty", &Schema{}, false, false, true, ""},
		{"string", &Schema{Type: TypeString("string")}, false, false, true, "string"},
		{"nullable string", &Schema{Type: TypeArray("null", "string")}, false, false, false, "string"},
		{"null", &Schema{Type: TypeString("null")}, false, false, true, "null"},
		{"object by type", &Schema{Type: TypeString("object")}, true, false, false, "object"},
		{"object by properties", &Schema{Properties: map[string]*Schema{}}, true, false, false, ""},
		{"array by items", &Schema{Items: &Schema{}}, false, true, false, ""},
		{"composition", &Schema{OneOf: []*Schema{{}}}, false, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.object, tt.schema.HasObjectShape())
			assert.Equal(t, tt.array, tt.schema.HasArrayShape())
			assert.Equal(t, tt.primitive, tt.schema.IsPrimitive())
			assert.Equal(t, tt.base, tt.schema.BaseType())
		})
	}

	t.Run("IsEmpty", func(t *testing.T) {
		assert.True(t, (&Schema{}).IsEmpty())
		assert.True(t, (&Schema{}).Clone().IsEmpty())
		assert.False(t, (&Schema{Description: "x"}).IsEmpty())
	})
}
