package cliutil

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"with args", "Pattern #%d: %s", []any{1, "^a"}, "Pattern #1: ^a"},
		{"no args", "Compilation: true", nil, "Compilation: true"},
		{"mixed args", "%s: %d items, %v active", []any{"Status", 42, true}, "Status: 42 items, true active"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestStringList(t *testing.T) {
	var list StringList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&list, "S", "subject")
	fs.Var(&list, "subject", "subject")

	require.NoError(t, fs.Parse([]string{"-S", "a", "--subject", "b c", "-S", ""}))
	assert.Equal(t, StringList{"a", "b c", ""}, list)
	assert.Equal(t, "a, b c, ", list.String())

	var nilList *StringList
	assert.Empty(t, nilList.String())
}
