package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/erraggy/rxdoc/document/internal/jsonhelpers"
)

// ValueKind distinguishes the variants of a Value.
type ValueKind uint8

const (
	// ValueUnset is the zero Value; a required field that was never provided.
	ValueUnset ValueKind = iota
	// ValueLiteral holds the text itself.
	ValueLiteral
	// ValueRef holds an index into a document collection.
	ValueRef
)

// Value is a pattern value or a subject: either a literal string or a
// non-negative integer reference into the matching collection.
type Value struct {
	Kind    ValueKind
	Literal string
	Index   int
}

// Literal returns a literal Value.
func Literal(s string) Value {
	return Value{Kind: ValueLiteral, Literal: s}
}

// Ref returns a reference Value.
func Ref(index int) Value {
	return Value{Kind: ValueRef, Index: index}
}

// IsRef reports whether v is a reference.
func (v Value) IsRef() bool {
	return v.Kind == ValueRef
}

// String renders v for diagnostics: the literal quoted, or "#n" for references.
func (v Value) String() string {
	switch v.Kind {
	case ValueLiteral:
		return strconv.Quote(v.Literal)
	case ValueRef:
		return "#" + strconv.Itoa(v.Index)
	default:
		return "<unset>"
	}
}

// MarshalJSON encodes literals as strings and references as integers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueLiteral:
		return jsonhelpers.Marshal(v.Literal)
	case ValueRef:
		return []byte(strconv.Itoa(v.Index)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a string literal or a non-negative integer reference.
// JSON null leaves v unset.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Literal(s)
		return nil
	}
	index, err := parseIndex(string(data))
	if err != nil {
		return err
	}
	*v = Ref(index)
	return nil
}

// MarshalYAML encodes literals as strings and references as integers.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case ValueLiteral:
		return v.Literal, nil
	case ValueRef:
		return v.Index, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML decodes a string literal or a non-negative integer reference.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	decoded, err := valueFromAny(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// valueFromAny converts a generically decoded scalar into a Value.
func valueFromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Value{}, nil
	case string:
		return Literal(x), nil
	default:
		index, err := indexFromAny(raw)
		if err != nil {
			return Value{}, err
		}
		return Ref(index), nil
	}
}

// indexFromAny accepts the integer types produced by the YAML decoder.
func indexFromAny(raw any) (int, error) {
	switch x := raw.(type) {
	case int:
		if x < 0 {
			return 0, fmt.Errorf("reference must be non-negative, got %d", x)
		}
		return x, nil
	case int64:
		if x < 0 {
			return 0, fmt.Errorf("reference must be non-negative, got %d", x)
		}
		return int(x), nil
	case uint64:
		return int(x), nil
	default:
		return 0, fmt.Errorf("expected a string or a non-negative integer, got %T", raw)
	}
}

// parseIndex parses a JSON number that must be a non-negative integer.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("expected a string or a non-negative integer, got %s", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("reference must be non-negative, got %d", n)
	}
	return n, nil
}
