package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rxdoc/rxerrors"
)

const sampleJSON = `{
  "meta": {"owner": "ci", "count": 3},
  "pattern_strings": ["^(?P<word>\\w+)"],
  "subject_strings": ["hello world"],
  "compile_options": ["caseless|anchored"],
  "patterns": [
    {
      "value": 0,
      "options": 0,
      "note": "kept",
      "execute": [
        {"subject": 0, "tag": 1},
        {"subject": "Bonjour", "options": ["notempty"]}
      ]
    }
  ]
}`

const sampleYAML = `meta:
  owner: ci
pattern_strings: ['^(?P<word>\w+)']
subject_strings: ['hello world']
compile_options: ['caseless|anchored']
patterns:
  - value: 0
    options: 0
    note: kept
    execute:
      - subject: 0
        tag: 1
      - subject: Bonjour
        options: [notempty]
`

func TestDecodeJSON(t *testing.T) {
	doc, err := Decode([]byte(sampleJSON), FormatAuto)
	require.NoError(t, err)

	require.Len(t, doc.Patterns, 1)
	p := doc.Patterns[0]
	assert.Equal(t, Ref(0), p.Value)
	assert.Equal(t, OptionsRef(0), p.Options)
	assert.Equal(t, "kept", p.Extra["note"])
	require.Len(t, p.Execute, 2)
	assert.Equal(t, Literal("Bonjour"), p.Execute[1].Subject)
	assert.Contains(t, p.Execute[0].Extra, "tag")
	assert.Contains(t, doc.Extra, "meta")
	assert.NotContains(t, doc.Extra, "patterns")
}

func TestDecodeYAML(t *testing.T) {
	doc, err := Decode([]byte(sampleYAML), FormatAuto)
	require.NoError(t, err)

	require.Len(t, doc.Patterns, 1)
	p := doc.Patterns[0]
	assert.Equal(t, Ref(0), p.Value)
	assert.Equal(t, []string{"notempty"}, p.Execute[1].Options.Names)
	assert.Equal(t, "kept", p.Extra["note"])
	assert.Equal(t, 1, p.Execute[0].Extra["tag"])
	assert.Equal(t, `^(?P<word>\w+)`, doc.PatternStrings[0])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"malformed json", `{"patterns": [`, FormatJSON},
		{"bool value", `{"patterns": [{"value": true}]}`, FormatJSON},
		{"negative subject", `{"patterns": [{"value": "a", "execute": [{"subject": -1}]}]}`, FormatJSON},
		{"malformed yaml", "patterns: [\n  - value: 'a\n", FormatYAML},
		{"options map", "patterns:\n  - value: a\n    options: {a: 1}\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, rxerrors.ErrInvalidDocument))
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			doc, err := Decode([]byte(sampleJSON), FormatJSON)
			require.NoError(t, err)

			first, err := Encode(doc, format)
			require.NoError(t, err)

			again, err := Decode(first, format)
			require.NoError(t, err)
			second, err := Encode(again, format)
			require.NoError(t, err)

			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestEncodeJSONFieldOrder(t *testing.T) {
	doc := &Document{
		Patterns: []*Pattern{{
			Value:   Literal("a"),
			Compile: Bool(true),
			Execute: []*Execution{{
				Subject:  Literal("a"),
				Match:    Bool(true),
				Captures: &Captures{},
			}},
			Extra: map[string]any{"meta": "m"},
		}},
	}
	out, err := Encode(doc, FormatJSON)
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, `"value"`), strings.Index(s, `"compile"`))
	assert.Less(t, strings.Index(s, `"execute"`), strings.Index(s, `"meta"`))
	assert.Contains(t, s, `"by_index": []`)
	assert.Contains(t, s, `"by_name": {}`)
	assert.NotContains(t, s, `"error"`)
	assert.True(t, strings.HasSuffix(s, "}\n"))
}

func TestEncodeJSONKeepsRegexText(t *testing.T) {
	doc := &Document{
		PatternStrings: []string{`(?P<year>\d{4})&`},
		CompileOptions: []OptionSet{*OptionsString("caseless|<none>")},
		Patterns: []*Pattern{{
			Value: Literal(`a<b>`),
			Execute: []*Execution{{
				Subject:  Literal("<tag>"),
				Match:    Bool(true),
				Captures: &Captures{ByIndex: []*string{new(string)}, ByName: map[string]*string{"<n>": nil}},
			}},
			Extra: map[string]any{"note": "x<y"},
		}},
		Extra: map[string]any{"meta": "a&b"},
	}
	out, err := Encode(doc, FormatJSON)
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, `\u003c`)
	assert.NotContains(t, s, `\u0026`)
	for _, raw := range []string{`"(?P<year>\\d{4})&"`, `"caseless|<none>"`, `"a<b>"`, `"<tag>"`, `"<n>": null`, `"x<y"`, `"a&b"`} {
		assert.Contains(t, s, raw)
	}

	again, err := Decode(out, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `(?P<year>\d{4})&`, again.PatternStrings[0])
	assert.True(t, strings.HasSuffix(s, "}\n"))
	assert.False(t, strings.HasSuffix(s, "}\n\n"))
}

func TestFormatDetection(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat([]byte("  \n{")))
	assert.Equal(t, FormatYAML, DetectFormat([]byte("patterns: []")))
	assert.Equal(t, FormatJSON, FormatFromPath("doc.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("doc.yml"))
	assert.Equal(t, FormatAuto, FormatFromPath("-"))

	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	doc, format, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)
	assert.Len(t, doc.Patterns, 1)

	_, _, err = DecodeFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
