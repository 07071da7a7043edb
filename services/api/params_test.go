package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntParam(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{name: "missing", query: "", want: 20},
		{name: "blank", query: "?limit=%20", want: 20},
		{name: "value", query: "?limit=15", want: 15},
		{name: "padded", query: "?limit=%2015%20", want: 15},
		{name: "zero", query: "?limit=0", want: 20},
		{name: "not a number", query: "?limit=many", want: 20},
		{name: "at maximum", query: "?limit=50", want: 50},
		{name: "above maximum", query: "?limit=51", wantErr: true},
		{name: "negative", query: "?limit=-2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/devices"+tt.query, nil)
			got, err := intParam(r, "limit", 20, 50)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrBadRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPagingComputesPages(t *testing.T) {
	a := &API{config: Config{MaxLimit: 1000}}
	r := httptest.NewRequest(http.MethodGet, "/?limit=7&page=4", nil)

	pg, err := a.paging(r, 25, 60)
	require.NoError(t, err)
	assert.Equal(t, paging{Page: 4, Limit: 7, Pages: 9}, pg)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "", ok: false},
		{header: "JWT-Bearer abc", want: "abc", ok: true},
		{header: "bearer   abc ", want: "abc", ok: true},
		{header: "Bearer", ok: false},
		{header: "Basic dXNlcjpwYXNz", ok: false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", tt.header)
		got, ok := bearerToken(r)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}
