// Package jsonhelpers merges pass-through fields into JSON objects.
//
// encoding/json has no equivalent of yaml:",inline" for maps, so document
// types marshal their known fields through an alias type and splice the
// extra keys in afterwards. Known fields keep their declared order and
// extra keys follow in sorted order, which keeps output deterministic.
package jsonhelpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Marshal is json.Marshal without HTML escaping, so regex text such as
// "(?P<name>a)" is written as is.
func Marshal(v any) ([]byte, error) {
	return MarshalIndent(v, "")
}

// MarshalIndent is json.MarshalIndent without HTML escaping. The result has
// no trailing newline.
func MarshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// MarshalWithExtras appends extras to the JSON object in base.
// Keys present in known are skipped so extras can never shadow a field.
//
// Example:
//
//	func (p *Pattern) MarshalJSON() ([]byte, error) {
//	    type alias Pattern
//	    base, err := jsonhelpers.Marshal((*alias)(p))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return jsonhelpers.MarshalWithExtras(base, p.Extra, patternFields)
//	}
func MarshalWithExtras(base []byte, extras map[string]any, known map[string]bool) ([]byte, error) {
	if len(extras) == 0 {
		return base, nil
	}
	base = bytes.TrimSpace(base)
	if len(base) < 2 || base[0] != '{' || base[len(base)-1] != '}' {
		return nil, fmt.Errorf("jsonhelpers: base is not a JSON object")
	}

	var buf bytes.Buffer
	buf.Grow(len(base) + 32*len(extras))
	buf.Write(base[:len(base)-1])
	wrote := len(bytes.TrimSpace(base[1:len(base)-1])) > 0

	for _, k := range slices.Sorted(maps.Keys(extras)) {
		if known[k] {
			continue
		}
		key, err := Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := Marshal(extras[k])
		if err != nil {
			return nil, fmt.Errorf("jsonhelpers: field %q: %w", k, err)
		}
		if wrote {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		wrote = true
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalExtras returns every key of the JSON object in data that is not
// in known, or nil when there are none. Numbers are kept as json.Number so
// integers survive a round trip unchanged.
func UnmarshalExtras(data []byte, known map[string]bool) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var extras map[string]any
	for k, v := range raw {
		if known[k] {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("jsonhelpers: field %q: %w", k, err)
		}
		if extras == nil {
			extras = make(map[string]any)
		}
		extras[k] = val
	}
	return extras, nil
}
