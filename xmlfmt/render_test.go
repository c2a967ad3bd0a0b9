package xmlfmt

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		opts     Options
		expected string
	}{
		{"empty input", nil, Options{}, ""},
		{"self-closing element", []Node{Elem("a")}, Options{}, "<a/>"},
		{"explicit empty element", []Node{&Element{Name: "a", Content: []Node{}}}, Options{}, "<a></a>"},
		{"text is escaped", []Node{Text("scotch & whisky")}, Options{}, "scotch &amp; whisky"},
		{"all five entities", []Node{Text(`<'&">`)}, Options{}, "&lt;&apos;&amp;&quot;&gt;"},
		{
			"attributes in order before content",
			[]Node{&Element{
				Name:    "pet",
				Attrs:   []Attr{{Name: "id", Value: "1"}, {Name: "note", Value: `a"b`}},
				Content: []Node{Text("rex")},
			}},
			Options{},
			`<pet id="1" note="a&quot;b">rex</pet>`,
		},
		{
			"siblings keep order",
			[]Node{Elem("b", Value(2)), Elem("a", Value(1))},
			Options{},
			"<b>2</b><a>1</a>",
		},
		{"cdata unescaped", []Node{CData("a < b & c")}, Options{}, "<![CDATA[a < b & c]]>"},
		{
			"cdata terminator split",
			[]Node{CData("x]]>y")},
			Options{},
			"<![CDATA[x]]]]><![CDATA[>y]]>",
		},
		{
			"two space indentation",
			[]Node{Elem("a", Elem("b", Elem("c", Value(1)), Elem("c", Value(2)), Elem("c", Value(3))))},
			Options{Indent: "  "},
			"<a>\n  <b>\n    <c>1</c>\n    <c>2</c>\n    <c>3</c>\n  </b>\n</a>",
		},
		{
			"default indentation",
			[]Node{Elem("a", Elem("b"))},
			Options{Indent: DefaultIndent},
			"<a>\n    <b/>\n</a>",
		},
		{
			"declaration",
			[]Node{Elem("a")},
			Options{Declaration: &Declaration{}},
			`<?xml version="1.0" encoding="UTF-8"?><a/>`,
		},
		{
			"declaration with indentation and standalone",
			[]Node{Elem("a")},
			Options{Declaration: &Declaration{Encoding: "ISO-8859-1", Standalone: new(bool)}, Indent: "  "},
			"<?xml version=\"1.0\" encoding=\"ISO-8859-1\" standalone=\"no\"?>\n<a/>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.nodes, tt.opts))
		})
	}
}

func TestRenderCDATARoundTrip(t *testing.T) {
	payload := "keep ]]> and ]]]]> intact"
	out := Render([]Node{Elem("doc", CData(payload))}, Options{})

	var decoded struct {
		Body string `xml:",chardata"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, payload, decoded.Body)

	inner := strings.TrimSuffix(strings.TrimPrefix(out, "<doc>"), "</doc>")
	for _, section := range strings.Split(inner, "<![CDATA[")[1:] {
		assert.Equal(t, 1, strings.Count(section, "]]>"), "each section has exactly one terminator")
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Text
	}{
		{"nil", nil, ""},
		{"string", "doggie", "doggie"},
		{"bool", false, "false"},
		{"int", 7, "7"},
		{"int64", int64(0), "0"},
		{"float", 0.001, "0.001"},
		{"whole float", 6.0, "6"},
		{"slice", []any{1, "a"}, `[1,"a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Value(tt.input))
		})
	}

	t.Run("attribute", func(t *testing.T) {
		assert.Equal(t, Attr{Name: "id", Value: "42"}, Attribute("id", int64(42)))
	})
}
