package skink

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// FromInterface builds an object tree from plain Go data: nil, booleans,
// numbers, strings, byte slices, []interface{}, and string-keyed maps,
// nested to any depth. Existing *Object values pass through unchanged. It is
// the ingestion path for decoded JSON and YAML documents.
func (rt *Runtime) FromInterface(v interface{}) (*Object, error) {
	switch v := v.(type) {
	case nil:
		return rt.NewUndef(), nil
	case *Object:
		return v, nil
	case bool:
		return rt.NewBool(v), nil
	case float64:
		return rt.NewNumber(v), nil
	case float32:
		return rt.NewNumber(float64(v)), nil
	case int:
		return rt.NewNumber(float64(v)), nil
	case int64:
		return rt.NewNumber(float64(v)), nil
	case uint64:
		return rt.NewNumber(float64(v)), nil
	case string:
		return rt.NewString(v), nil
	case []byte:
		return rt.NewBytes(v), nil
	case []interface{}:
		elems := make([]*Object, len(v))
		for i, e := range v {
			o, err := rt.FromInterface(e)
			if err != nil {
				return nil, err
			}
			elems[i] = o
		}
		return rt.NewList(elems...), nil
	case map[string]interface{}:
		pairs := make(map[string]*Object, len(v))
		for k, e := range v {
			o, err := rt.FromInterface(e)
			if err != nil {
				return nil, err
			}
			pairs[k] = o
		}
		return rt.NewMap(pairs), nil
	case map[interface{}]interface{}:
		// yaml.v2 decodes mappings with interface{} keys.
		pairs := make(map[string]*Object, len(v))
		for k, e := range v {
			o, err := rt.FromInterface(e)
			if err != nil {
				return nil, err
			}
			pairs[stringifyKey(k)] = o
		}
		return rt.NewMap(pairs), nil
	case yaml.MapSlice:
		pairs := make(map[string]*Object, len(v))
		for _, item := range v {
			o, err := rt.FromInterface(item.Value)
			if err != nil {
				return nil, err
			}
			pairs[stringifyKey(item.Key)] = o
		}
		return rt.NewMap(pairs), nil
	}
	return nil, Usagef("cannot ingest a value of type %T", v)
}

// stringifyKey renders a decoded mapping key as text.
func stringifyKey(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// DecodeJSON parses a JSON document into an object tree.
func (rt *Runtime) DecodeJSON(data []byte) (*Object, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, Usagef("decoding JSON: %w", err)
	}
	return rt.FromInterface(v)
}

// DecodeYAML parses a YAML document into an object tree.
func (rt *Runtime) DecodeYAML(data []byte) (*Object, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, Usagef("decoding YAML: %w", err)
	}
	return rt.FromInterface(v)
}
