package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/rxerrors"
)

func TestExtractCaptures(t *testing.T) {
	tests := []struct {
		name    string
		groups  []*string
		names   map[string]int
		want    *document.Captures
		wantErr bool
	}{
		{
			name:   "group zero only",
			groups: []*string{str("abc")},
			want:   &document.Captures{ByIndex: []*string{}, ByName: map[string]*string{}},
		},
		{
			name:   "non participating group",
			groups: []*string{str("value"), str("value"), nil},
			want:   &document.Captures{ByIndex: []*string{str("value"), nil}, ByName: map[string]*string{}},
		},
		{
			name:   "named groups",
			groups: []*string{str("2024-01"), str("2024"), str("01")},
			names:  map[string]int{"year": 1, "month": 2},
			want: &document.Captures{
				ByIndex: []*string{str("2024"), str("01")},
				ByName:  map[string]*string{"year": str("2024"), "month": str("01")},
			},
		},
		{
			name:   "named group without participation",
			groups: []*string{str("a"), nil},
			names:  map[string]int{"x": 1},
			want:   &document.Captures{ByIndex: []*string{nil}, ByName: map[string]*string{"x": nil}},
		},
		{name: "no groups", groups: nil, wantErr: true},
		{name: "name on group zero", groups: []*string{str("a")}, names: map[string]int{"x": 0}, wantErr: true},
		{name: "name past end", groups: []*string{str("a"), str("a")}, names: map[string]int{"x": 2}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractCaptures(tt.groups, tt.names)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, rxerrors.ErrExternalEngine)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCapturesCopiesValues(t *testing.T) {
	group := "a"
	groups := []*string{&group, &group}
	got, err := ExtractCaptures(groups, map[string]int{"g": 1})
	require.NoError(t, err)

	group = "changed"
	assert.Equal(t, "a", *got.ByIndex[0])
	assert.Equal(t, "a", *got.ByName["g"])
}
