package s3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		disableTLS bool
		want       string
	}{
		{name: "empty", endpoint: "", want: ""},
		{name: "host only", endpoint: "minio:9000", want: "https://minio:9000"},
		{name: "host without tls", endpoint: "minio:9000", disableTLS: true, want: "http://minio:9000"},
		{name: "full url", endpoint: "http://seaweed:8333", want: "http://seaweed:8333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEndpoint(tt.endpoint, tt.disableTLS))
		})
	}
}

func TestEncodeSHA256(t *testing.T) {
	got, err := encodeSHA256("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	require.NoError(t, err)
	assert.Equal(t, "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU=", got)

	_, err = encodeSHA256("")
	assert.Error(t, err)
	_, err = encodeSHA256("zz")
	assert.Error(t, err)
}

func TestNewClientRejectsHalfCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Options{AccessKey: "only-access"})
	assert.Error(t, err)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("S3_ENDPOINT", " minio:9000 ")
	t.Setenv("S3_DISABLE_TLS", "true")
	t.Setenv("S3_FORCE_PATH_STYLE", "false")
	opts := OptionsFromEnv()
	assert.Equal(t, "minio:9000", opts.Endpoint)
	assert.True(t, opts.DisableTLS)
	assert.False(t, opts.ForcePathStyle)
}

func TestNilClient(t *testing.T) {
	var c *Client
	assert.Error(t, c.PutObject(context.Background(), "b", "k", nil, 0, "00", ""))
	_, err := c.PresignGet(context.Background(), "b", "k", 0)
	assert.Error(t, err)
}
