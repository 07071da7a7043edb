package api

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestListDevices(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := srv.do(t, http.MethodGet, "/devices/?factory=acme&limit=5&tag=canary&name=gate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 5, body["limit"])
	assert.EqualValues(t, 12, body["pages"])
	assert.EqualValues(t, 60, body["total"])

	devices := body["devices"].([]any)
	require.Len(t, devices, 5)
	for _, raw := range devices {
		device := raw.(map[string]any)
		assert.Equal(t, "acme", device["factory"])
		assert.Contains(t, device["name"], "gate")
		tags := device["device-tags"].([]any)
		require.NotEmpty(t, tags)
		assert.Equal(t, "canary", tags[0])
		assert.Len(t, device["ostree-hash"], 64)
		assert.NotEmpty(t, device["owner"])
	}
}

func TestSeededServerHandlesConcurrentRequests(t *testing.T) {
	srv := newTestServer(t, Config{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 5 {
				rec := srv.do(t, http.MethodGet, "/devices/?limit=20", nil)
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		}()
	}
	wg.Wait()
}

func TestListDevicesDefaults(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := srv.do(t, http.MethodGet, "/devices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 20, body["limit"])
	assert.EqualValues(t, 3, body["pages"])

	devices := body["devices"].([]any)
	require.Len(t, devices, 20)
	factory := devices[0].(map[string]any)["factory"].(string)
	assert.Len(t, strings.Split(factory, "-"), 2)
	for _, raw := range devices {
		assert.Equal(t, factory, raw.(map[string]any)["factory"])
	}
}

func TestListDevicesEchoesTokenOwner(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		sign   string
		scheme string
		want   string
	}{
		{name: "verified jwt-bearer", secret: "s3cret", sign: "s3cret", scheme: "JWT-Bearer", want: "user-42"},
		{name: "verified bearer", secret: "s3cret", sign: "s3cret", scheme: "Bearer", want: "user-42"},
		{name: "unverified without secret", secret: "", sign: "anything", scheme: "jwt-bearer", want: "user-42"},
		{name: "bad signature ignored", secret: "s3cret", sign: "other", scheme: "JWT-Bearer", want: ""},
		{name: "unknown scheme ignored", secret: "s3cret", sign: "s3cret", scheme: "Basic", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, Config{JWTSecret: tt.secret})
			token := signToken(t, tt.sign, jwt.MapClaims{"id": "user-42"})

			rec := srv.do(t, http.MethodGet, "/devices/?limit=3", nil, "Authorization", tt.scheme+" "+token)
			require.Equal(t, http.StatusOK, rec.Code)

			for _, raw := range decodeBody(t, rec)["devices"].([]any) {
				owner := raw.(map[string]any)["owner"].(string)
				if tt.want != "" {
					assert.Equal(t, tt.want, owner)
				} else {
					assert.NotEqual(t, "user-42", owner)
					assert.Len(t, owner, 24)
				}
			}
		})
	}
}

func TestDeleteDevice(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := srv.do(t, http.MethodDelete, "/devices/dev-1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeBody(t, rec)["error"])

	rec = srv.do(t, http.MethodDelete, "/devices/dev-1", nil, "Authorization", "Bearer token")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []string{deviceDeletedEvent}, srv.publisher.names())

	rec = srv.do(t, http.MethodDelete, "/devices/dev-1?fail=400", nil, "Authorization", "Bearer token")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeBody(t, rec)["error"])

	rec = srv.do(t, http.MethodDelete, "/devices/dev-1?fail=500", nil, "Authorization", "JWT-Bearer token")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server_error", decodeBody(t, rec)["error"])
	assert.Len(t, srv.publisher.names(), 1)
}
