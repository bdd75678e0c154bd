package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/erraggy/rxdoc/document/internal/jsonhelpers"
	"strings"
)

// OptionKind distinguishes the three legal option representations.
type OptionKind uint8

const (
	// OptionString is a pipe-delimited list of names: "caseless|anchored".
	OptionString OptionKind = iota + 1
	// OptionList is a sequence of names: ["caseless", "anchored"].
	OptionList
	// OptionRef is an index into compile_options or execute_options.
	OptionRef
)

// OptionSet is an option representation as written in a document.
type OptionSet struct {
	Kind  OptionKind
	Text  string
	Names []string
	Index int
}

// OptionsString returns a pipe-delimited option representation.
func OptionsString(text string) *OptionSet {
	return &OptionSet{Kind: OptionString, Text: text}
}

// OptionsList returns a list option representation.
func OptionsList(names ...string) *OptionSet {
	return &OptionSet{Kind: OptionList, Names: names}
}

// OptionsRef returns a reference option representation.
func OptionsRef(index int) *OptionSet {
	return &OptionSet{Kind: OptionRef, Index: index}
}

// IsRef reports whether o is a reference.
func (o *OptionSet) IsRef() bool {
	return o != nil && o.Kind == OptionRef
}

// String renders the representation for diagnostics and text output.
func (o *OptionSet) String() string {
	if o == nil {
		return "[]"
	}
	switch o.Kind {
	case OptionString:
		return strconv.Quote(o.Text)
	case OptionList:
		return "[" + strings.Join(o.Names, ", ") + "]"
	case OptionRef:
		return "#" + strconv.Itoa(o.Index)
	default:
		return "<invalid>"
	}
}

// Clone returns a deep copy of o.
func (o *OptionSet) Clone() *OptionSet {
	if o == nil {
		return nil
	}
	c := *o
	if o.Names != nil {
		c.Names = append([]string(nil), o.Names...)
	}
	return &c
}

// MarshalJSON encodes the representation in its original form.
func (o OptionSet) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OptionString:
		return jsonhelpers.Marshal(o.Text)
	case OptionList:
		names := o.Names
		if names == nil {
			names = []string{}
		}
		return jsonhelpers.Marshal(names)
	case OptionRef:
		return []byte(strconv.Itoa(o.Index)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a string, an array of strings or a non-negative integer.
func (o *OptionSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty option representation")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OptionSet{Kind: OptionString, Text: s}
	case '[':
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return fmt.Errorf("option list must only contain strings: %w", err)
		}
		*o = OptionSet{Kind: OptionList, Names: names}
	case 'n':
		*o = OptionSet{}
	default:
		index, err := parseIndex(string(data))
		if err != nil {
			return err
		}
		*o = OptionSet{Kind: OptionRef, Index: index}
	}
	return nil
}

// MarshalYAML encodes the representation in its original form.
func (o OptionSet) MarshalYAML() (any, error) {
	switch o.Kind {
	case OptionString:
		return o.Text, nil
	case OptionList:
		if o.Names == nil {
			return []string{}, nil
		}
		return o.Names, nil
	case OptionRef:
		return o.Index, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML decodes a string, a sequence of strings or a non-negative integer.
func (o *OptionSet) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*o = OptionSet{}
	case string:
		*o = OptionSet{Kind: OptionString, Text: x}
	case []any:
		names := make([]string, 0, len(x))
		for i, item := range x {
			name, ok := item.(string)
			if !ok {
				return fmt.Errorf("option list item %d must be a string, got %T", i, item)
			}
			names = append(names, name)
		}
		*o = OptionSet{Kind: OptionList, Names: names}
	default:
		index, err := indexFromAny(raw)
		if err != nil {
			return err
		}
		*o = OptionSet{Kind: OptionRef, Index: index}
	}
	return nil
}
