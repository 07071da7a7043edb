package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Range
		wantErr bool
	}{
		{name: "pair", input: "2-6", want: R(2, 6)},
		{name: "spaces", input: " 3 - 10 ", want: R(3, 10)},
		{name: "single", input: "5", want: R(5, 5)},
		{name: "empty", input: "", wantErr: true},
		{name: "reversed", input: "6-2", wantErr: true},
		{name: "not a number", input: "a-b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangeText(t *testing.T) {
	var r Range
	require.NoError(t, r.UnmarshalText([]byte("0-60")))
	assert.Equal(t, R(0, 60), r)

	text, err := r.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0-60", string(text))
}

func TestWithRangesNormalizes(t *testing.T) {
	r := DefaultRanges()
	r.Runs = Range{Min: 9, Max: 3}
	r.Tests = Range{Min: -4, Max: -1}

	g := New(WithRanges(r))
	assert.Equal(t, R(3, 9), g.Ranges().Runs)
	assert.Equal(t, R(0, 0), g.Ranges().Tests)
	assert.Empty(t, g.Tests("https://x/tests"))
}
