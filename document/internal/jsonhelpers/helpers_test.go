package jsonhelpers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalWithExtras(t *testing.T) {
	known := map[string]bool{"value": true}

	t.Run("no extras returns base", func(t *testing.T) {
		got, err := MarshalWithExtras([]byte(`{"value":"a"}`), nil, known)
		require.NoError(t, err)
		assert.Equal(t, `{"value":"a"}`, string(got))
	})

	t.Run("extras appended in sorted order", func(t *testing.T) {
		extras := map[string]any{"zeta": 1, "meta": map[string]any{"k": "v"}}
		got, err := MarshalWithExtras([]byte(`{"value":"a"}`), extras, known)
		require.NoError(t, err)
		assert.Equal(t, `{"value":"a","meta":{"k":"v"},"zeta":1}`, string(got))
	})

	t.Run("empty base object", func(t *testing.T) {
		got, err := MarshalWithExtras([]byte(`{}`), map[string]any{"x": true}, known)
		require.NoError(t, err)
		assert.Equal(t, `{"x":true}`, string(got))
	})

	t.Run("known keys never shadowed", func(t *testing.T) {
		got, err := MarshalWithExtras([]byte(`{"value":"a"}`), map[string]any{"value": "b"}, known)
		require.NoError(t, err)
		assert.Equal(t, `{"value":"a"}`, string(got))
	})

	t.Run("non-object base", func(t *testing.T) {
		_, err := MarshalWithExtras([]byte(`[1]`), map[string]any{"x": 1}, known)
		assert.Error(t, err)
	})
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name   string
		v      any
		indent string
		want   string
	}{
		{"html characters kept", "(?P<x>a)&b", "", `"(?P<x>a)&b"`},
		{"object", map[string]any{"k": "<v>"}, "", `{"k":"<v>"}`},
		{"indented", map[string]any{"k": 1}, "  ", "{\n  \"k\": 1\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalIndent(tt.v, tt.indent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	got, err := MarshalWithExtras([]byte(`{"value":"a"}`), map[string]any{"meta": "<m>"}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"value":"a","meta":"<m>"}`, string(got))

	_, err = Marshal(make(chan int))
	assert.Error(t, err)
}

func TestUnmarshalExtras(t *testing.T) {
	known := map[string]bool{"value": true, "options": true}

	extras, err := UnmarshalExtras([]byte(`{"value":"a","meta":{"n":12345678901234567},"note":"hi"}`), known)
	require.NoError(t, err)
	require.Len(t, extras, 2)
	assert.Equal(t, "hi", extras["note"])

	meta, ok := extras["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("12345678901234567"), meta["n"])

	none, err := UnmarshalExtras([]byte(`{"value":"a"}`), known)
	require.NoError(t, err)
	assert.Nil(t, none)
}
