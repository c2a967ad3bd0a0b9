package example

import (
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vitalvas/schemadoc/openapi"
	"github.com/vitalvas/schemadoc/sample"
	"github.com/vitalvas/schemadoc/xmlfmt"
)

// OutputType is the representation a caller wants for structured values.
type OutputType int

const (
	// OutputUnspecified keeps structured values as data.
	OutputUnspecified OutputType = iota

	// OutputJSON keeps structured values as data.
	OutputJSON

	// OutputText renders structured values as indented JSON text.
	OutputText
)

// ParseOutputType maps "json" and "text" to their OutputType. Anything else
// is OutputUnspecified.
func ParseOutputType(s string) OutputType {
	switch strings.ToLower(s) {
	case "json":
		return OutputJSON
	case "text":
		return OutputText
	default:
		return OutputUnspecified
	}
}

// Format tags how a record's value should be presented.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Record is one labelled example ready for presentation.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	MediaType   string `json:"mediaType" yaml:"mediaType"`
	Value       any    `json:"value" yaml:"value"`
	Format      Format `json:"format" yaml:"format"`
}

// Request carries everything Select looks at. Examples takes precedence
// over Example, which takes precedence over the schema.
type Request struct {
	// Examples are keyed author examples, visited in ExampleOrder and then
	// by sorted key.
	Examples     map[string]*openapi.Example
	ExampleOrder []string

	// Example is a single author example.
	Example any

	Schema    *openapi.Schema
	MediaType string

	IncludeReadOnly    bool
	IncludeWriteOnly   bool
	Output             OutputType
	SkipExampleStrings bool
}

// Options holds the Request fields that do not come from a media type object.
type Options struct {
	IncludeReadOnly    bool
	IncludeWriteOnly   bool
	Output             OutputType
	SkipExampleStrings bool
}

// DefaultIndent indents JSON text produced for OutputText.
const DefaultIndent = "  "

// looseKey matches bare object keys in hand-written JSON.
var looseKey = regexp.MustCompile(`(\w+)(:)`)

// FromMediaType selects examples for a media type object of a request body
// or response.
func FromMediaType(mediaType string, mt *openapi.MediaType, opts Options) []Record {
	req := Request{
		MediaType:          mediaType,
		IncludeReadOnly:    opts.IncludeReadOnly,
		IncludeWriteOnly:   opts.IncludeWriteOnly,
		Output:             opts.Output,
		SkipExampleStrings: opts.SkipExampleStrings,
	}
	if mt != nil {
		req.Examples = mt.Examples
		req.ExampleOrder = mt.ExampleOrder
		req.Example = mt.Example
		req.Schema = mt.Schema
	}
	return Select(req)
}

// Select returns the examples to show for a body. Keyed author examples come
// first, then a single author example, then the schema's own example, then
// synthesized samples. When nothing applies a single empty record is
// returned, so the result is never empty.
func Select(req Request) []Record {
	mediaType := strings.ToLower(req.MediaType)

	var out []Record
	switch {
	case len(req.Examples) > 0:
		for _, id := range openapi.OrderedKeys(req.Examples, req.ExampleOrder) {
			ex := req.Examples[id]
			if ex == nil {
				continue
			}
			summary := ex.Summary
			if summary == "" {
				summary = id
			}
			out = append(out, authored(req, mediaType, id, summary, ex.Description, ex.Value))
		}
	case req.Example != nil:
		out = append(out, authored(req, mediaType, "Example", "", "", req.Example))
	case req.Schema != nil && req.Schema.Example != nil:
		out = append(out, authored(req, mediaType, "Example", "", "", req.Schema.Example))
	case req.Schema != nil && synthesizable(mediaType):
		out = synthesized(req, mediaType)
	}

	if len(out) == 0 {
		out = append(out, Record{ID: "Example", MediaType: req.MediaType, Value: "", Format: FormatText})
	}
	return out
}

func isJSON(mediaType string) bool {
	return strings.Contains(mediaType, "json")
}

func isXML(mediaType string) bool {
	return strings.Contains(mediaType, "xml")
}

func synthesizable(mediaType string) bool {
	return isJSON(mediaType) || isXML(mediaType) || strings.Contains(mediaType, "text") || strings.Contains(mediaType, "*/*")
}

// authored builds a record from an author-supplied value. JSON media types
// parse string values, accepting loosely quoted JSON; text that still does
// not parse is kept verbatim.
func authored(req Request, mediaType, id, summary, description string, v any) Record {
	rec := Record{ID: id, Summary: summary, Description: description, MediaType: req.MediaType, Value: v, Format: FormatText}

	if !isJSON(mediaType) {
		if _, ok := v.(string); !ok && !isXML(mediaType) {
			rec.Value = jsonText(v)
		}
		return rec
	}

	if text, ok := v.(string); ok {
		parsed, ok := parseLoose(text)
		if !ok {
			return rec
		}
		v = parsed
	}
	return present(rec, v, req.Output)
}

// present stores a structured value, as data or as JSON text per output.
func present(rec Record, v any, output OutputType) Record {
	if output == OutputText {
		rec.Value = jsonText(v)
		rec.Format = FormatText
		return rec
	}
	rec.Value = v
	rec.Format = FormatJSON
	return rec
}

// parseLoose decodes strict JSON first, then retries with bare keys quoted
// and single quotes swapped for double quotes.
func parseLoose(text string) (any, bool) {
	if v, err := openapi.DecodeValue([]byte(text)); err == nil {
		return v, true
	}

	fixed := looseKey.ReplaceAllString(text, `"$1"$2`)
	fixed = strings.ReplaceAll(fixed, "'", `"`)
	if v, err := openapi.DecodeValue([]byte(fixed)); err == nil {
		return v, true
	}
	return nil, false
}

func jsonText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", DefaultIndent)
	if err != nil {
		return ""
	}
	return string(data)
}

func synthesized(req Request, mediaType string) []Record {
	xml := isXML(mediaType)
	samples := sample.Synthesize(req.Schema, sample.Config{
		IncludeReadOnly:    req.IncludeReadOnly,
		IncludeWriteOnly:   req.IncludeWriteOnly,
		SkipExampleStrings: req.SkipExampleStrings,
		XML:                xml,
	})

	out := make([]Record, 0, len(samples))
	for i, smp := range samples {
		rec := Record{
			ID:          "Example" + strconv.Itoa(i+1),
			Summary:     smp.Title,
			Description: smp.Description,
			MediaType:   req.MediaType,
		}
		if rec.Summary == "" {
			rec.Summary = "Example " + strconv.Itoa(i+1)
		}

		switch {
		case xml:
			nodes, _ := smp.Value.([]xmlfmt.Node)
			rec.Value = xmlfmt.Render(nodes, xmlfmt.Options{
				Declaration: &xmlfmt.Declaration{},
				Indent:      xmlfmt.DefaultIndent,
			})
			rec.Format = FormatText
		case isJSON(mediaType):
			rec = present(rec, smp.Value, req.Output)
		default:
			rec.Value = jsonText(smp.Value)
			rec.Format = FormatText
		}
		out = append(out, rec)
	}
	return out
}
