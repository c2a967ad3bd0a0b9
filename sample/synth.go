package sample

import (
	json "github.com/goccy/go-json"

	"github.com/vitalvas/schemadoc/openapi"
	"github.com/vitalvas/schemadoc/xmlfmt"
)

// Synthesis bounds.
const (
	// MaxCandidatesPerProperty caps how many values one property contributes
	// to the object fan-out.
	MaxCandidatesPerProperty = 2

	// MaxSamples caps the number of samples an object fan-out produces.
	MaxSamples = 10

	// MaxDepth bounds recursion for inputs whose cycles were not cut
	// upstream. Deeper positions yield an empty string.
	MaxDepth = 64
)

// additionalKey names the sample entry produced for additionalProperties.
const additionalKey = "additionalProp1"

// Config selects what Synthesize emits.
type Config struct {
	// IncludeReadOnly keeps readOnly properties.
	IncludeReadOnly bool

	// IncludeWriteOnly keeps writeOnly properties.
	IncludeWriteOnly bool

	// SkipExampleStrings blanks string literals.
	SkipExampleStrings bool

	// XML produces []xmlfmt.Node values instead of plain data.
	XML bool
}

// DefaultConfig returns the configuration used for documentation output:
// read-only and write-only properties included, strings kept, JSON values.
func DefaultConfig() Config {
	return Config{IncludeReadOnly: true, IncludeWriteOnly: true}
}

// Sample is one synthesized value. Title and Description come from the
// oneOf/anyOf alternative that produced it, when titled.
//
// Value holds plain data in JSON mode: nil, bool, int64, float64, string,
// []any or *openapi.Object. In XML mode it holds []xmlfmt.Node.
type Sample struct {
	Title       string
	Description string
	Value       any
}

// Synthesize produces example values for s. The result is never empty for
// a non-nil schema and equal inputs produce equal results. A nil schema
// returns nil.
func Synthesize(s *openapi.Schema, cfg Config) []Sample {
	if s == nil {
		return nil
	}
	g := &synth{cfg: cfg}
	if cfg.XML {
		return g.xmlRoot(s)
	}
	return g.values(s, "", 0)
}

type synth struct {
	cfg Config
}

// skip reports whether a property is left out of object samples.
func (g *synth) skip(prop *openapi.Schema) bool {
	switch {
	case prop.Deprecated:
		return true
	case prop.ReadOnly && !g.cfg.IncludeReadOnly:
		return true
	case prop.WriteOnly && !g.cfg.IncludeWriteOnly:
		return true
	}
	return false
}

// flattenAllOf merges every allOf branch in order onto the node's own
// keywords. Later branches win on scalar keywords.
func flattenAllOf(s *openapi.Schema) *openapi.Schema {
	merged := s.Clone()
	merged.AllOf = nil
	for _, branch := range s.AllOf {
		merged = openapi.Merge(merged, branch)
	}
	return merged
}

// alternatives splits a oneOf/anyOf node into its shared keywords and the
// alternatives to expand. anyOf is expanded when both are present.
func alternatives(s *openapi.Schema) (*openapi.Schema, []*openapi.Schema) {
	shared := s.Clone()
	if len(s.AnyOf) > 0 {
		shared.AnyOf = nil
		return shared, s.AnyOf
	}
	shared.OneOf = nil
	return shared, s.OneOf
}

// expand runs fn on every alternative merged with the shared keywords,
// labels untitled samples with the alternative's title and drops
// duplicates by key, keeping first-seen order.
func expand(s *openapi.Schema, fn func(*openapi.Schema) []Sample, key func(Sample) string) []Sample {
	shared, alts := alternatives(s)

	var out []Sample
	seen := make(map[string]bool)
	for _, alt := range alts {
		if alt == nil {
			alt = &openapi.Schema{}
		}
		for _, smp := range fn(openapi.Merge(shared, alt)) {
			if smp.Title == "" && smp.Description == "" {
				smp.Title, smp.Description = alt.Title, alt.Description
			}
			k := key(smp)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, smp)
		}
	}
	return out
}

func jsonKey(smp Sample) string {
	data, err := json.Marshal(smp.Value)
	if err != nil {
		return ""
	}
	return string(data)
}

func xmlKey(smp Sample) string {
	nodes, _ := smp.Value.([]xmlfmt.Node)
	return xmlfmt.Render(nodes, xmlfmt.Options{})
}

// values produces JSON-mode samples. name is the property the schema sits
// under and doubles as the fallback string.
func (g *synth) values(s *openapi.Schema, name string, depth int) []Sample {
	if depth > MaxDepth {
		return []Sample{{Value: ""}}
	}

	switch {
	case s.IsCycle():
		return []Sample{{Value: Primitive(s, name, g.cfg.SkipExampleStrings)}}
	case len(s.AllOf) > 0:
		return g.values(flattenAllOf(s), name, depth+1)
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		return expand(s, func(alt *openapi.Schema) []Sample {
			return g.values(alt, name, depth+1)
		}, jsonKey)
	}

	structured := s.HasObjectShape() || s.HasArrayShape()
	if structured {
		if ex := authorExamples(s); len(ex) > 0 {
			return ex
		}
	}

	switch {
	case s.HasObjectShape():
		return g.object(s, depth)
	case s.HasArrayShape():
		return g.array(s, name, depth)
	default:
		return []Sample{{Value: Primitive(s, name, g.cfg.SkipExampleStrings)}}
	}
}

func authorExamples(s *openapi.Schema) []Sample {
	if len(s.Examples) > 0 {
		out := make([]Sample, 0, len(s.Examples))
		for _, v := range s.Examples {
			out = append(out, Sample{Value: v})
		}
		return out
	}
	if s.Example != nil {
		return []Sample{{Value: s.Example}}
	}
	return nil
}

func (g *synth) array(s *openapi.Schema, name string, depth int) []Sample {
	items := s.Items
	if items == nil {
		items = &openapi.Schema{}
	}

	candidates := g.values(items, name, depth+1)
	list := make([]any, 0, len(candidates))
	for _, c := range candidates {
		list = append(list, c.Value)
	}
	return []Sample{{Value: list}}
}

// object fans out over properties: every accumulated sample is combined
// with up to MaxCandidatesPerProperty values of the next property, and the
// accumulation stops growing at MaxSamples.
func (g *synth) object(s *openapi.Schema, depth int) []Sample {
	acc := []*openapi.Object{openapi.NewObject()}

	for _, name := range s.PropertyNames() {
		prop := s.Properties[name]
		if prop == nil {
			prop = &openapi.Schema{}
		}
		if g.skip(prop) {
			continue
		}

		candidates := g.values(prop, name, depth+1)
		if len(candidates) > MaxCandidatesPerProperty {
			candidates = candidates[:MaxCandidatesPerProperty]
		}
		acc = fanOut(acc, name, candidates)
	}

	if ap := s.AdditionalProperties; ap != nil && ap.Schema != nil {
		if candidates := g.values(ap.Schema, additionalKey, depth+1); len(candidates) > 0 {
			acc = fanOut(acc, additionalKey, candidates[:1])
		}
	}

	out := make([]Sample, 0, len(acc))
	for _, obj := range acc {
		out = append(out, Sample{Value: obj})
	}
	return out
}

func fanOut(acc []*openapi.Object, name string, candidates []Sample) []*openapi.Object {
	if len(candidates) == 0 {
		return acc
	}

	next := make([]*openapi.Object, 0, min(len(acc)*len(candidates), MaxSamples))
	for _, obj := range acc {
		for _, c := range candidates {
			if len(next) == MaxSamples {
				return next
			}
			cp := copyObject(obj)
			cp.Set(name, c.Value)
			next = append(next, cp)
		}
	}
	return next
}

func copyObject(src *openapi.Object) *openapi.Object {
	dst := openapi.NewObject()
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
	return dst
}
