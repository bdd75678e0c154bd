package document

import (
	"encoding/json"

	"github.com/erraggy/rxdoc/document/internal/jsonhelpers"
)

var (
	documentFields = map[string]bool{
		PatternStrings: true, SubjectStrings: true,
		CompileOptions: true, ExecuteOptions: true,
		"patterns": true,
	}
	patternFields = map[string]bool{
		"value": true, "options": true, "compile": true, "error": true, "execute": true,
	}
	executionFields = map[string]bool{
		"subject": true, "options": true, "match": true, "captures": true,
	}
)

// MarshalJSON flattens Extra into the document object.
func (d *Document) MarshalJSON() ([]byte, error) {
	type alias Document
	base, err := jsonhelpers.Marshal((*alias)(d))
	if err != nil {
		return nil, err
	}
	return jsonhelpers.MarshalWithExtras(base, d.Extra, documentFields)
}

// UnmarshalJSON captures unknown top-level keys in Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	if err := json.Unmarshal(data, (*alias)(d)); err != nil {
		return err
	}
	extra, err := jsonhelpers.UnmarshalExtras(data, documentFields)
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

// MarshalJSON flattens Extra into the pattern object.
func (p *Pattern) MarshalJSON() ([]byte, error) {
	type alias Pattern
	base, err := jsonhelpers.Marshal((*alias)(p))
	if err != nil {
		return nil, err
	}
	return jsonhelpers.MarshalWithExtras(base, p.Extra, patternFields)
}

// UnmarshalJSON captures unknown pattern keys in Extra.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	type alias Pattern
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}
	extra, err := jsonhelpers.UnmarshalExtras(data, patternFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	return nil
}

// MarshalJSON flattens Extra into the execution object.
func (e *Execution) MarshalJSON() ([]byte, error) {
	type alias Execution
	base, err := jsonhelpers.Marshal((*alias)(e))
	if err != nil {
		return nil, err
	}
	return jsonhelpers.MarshalWithExtras(base, e.Extra, executionFields)
}

// UnmarshalJSON captures unknown execute entry keys in Extra.
func (e *Execution) UnmarshalJSON(data []byte) error {
	type alias Execution
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return err
	}
	extra, err := jsonhelpers.UnmarshalExtras(data, executionFields)
	if err != nil {
		return err
	}
	e.Extra = extra
	return nil
}

// MarshalJSON renders nil slices and maps as [] and {} so an empty capture
// set is distinguishable from a missing one.
func (c *Captures) MarshalJSON() ([]byte, error) {
	type alias Captures
	a := alias(*c)
	if a.ByIndex == nil {
		a.ByIndex = []*string{}
	}
	if a.ByName == nil {
		a.ByName = map[string]*string{}
	}
	return jsonhelpers.Marshal(a)
}
