package openapi

import (
	"encoding/json"
)

// MarshalJSON encodes the schema with properties and patternProperties in
// declaration order.
func (s Schema) MarshalJSON() ([]byte, error) {
	type plain Schema
	p := plain(s)
	p.Properties, p.PatternProperties = nil, nil

	if len(s.Properties) == 0 && len(s.PatternProperties) == 0 {
		return json.Marshal(p)
	}
	return appendOrdered(p, func(obj *Object) {
		if len(s.Properties) > 0 {
			obj.Set("properties", orderedObject(s.Properties, s.PropertyNames()))
		}
		if len(s.PatternProperties) > 0 {
			obj.Set("patternProperties", orderedObject(s.PatternProperties, s.PatternPropertyNames()))
		}
	})
}

// MarshalJSON encodes the media type with its examples in declaration
// order.
func (m MediaType) MarshalJSON() ([]byte, error) {
	type plain MediaType
	p := plain(m)
	p.Examples = nil

	if len(m.Examples) == 0 {
		return json.Marshal(p)
	}
	return appendOrdered(p, func(obj *Object) {
		obj.Set("examples", orderedObject(m.Examples, OrderedKeys(m.Examples, m.ExampleOrder)))
	})
}

// appendOrdered encodes v, lets set add keys to the resulting object and
// encodes it again. Keys added by set come after the fields of v.
func appendOrdered(v any, set func(obj *Object)) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	obj, ok := decoded.(*Object)
	if !ok {
		return data, nil
	}

	set(obj)
	return json.Marshal(obj)
}

func orderedObject[V any](m map[string]V, names []string) *Object {
	obj := NewObject()
	for _, name := range names {
		obj.Set(name, m[name])
	}
	return obj
}
