package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	bucket, key string
	body        []byte
	size        int64
	digest      string
	contentType string
	presignTTL  time.Duration
	putErr      error
}

func (f *fakeStore) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, sha256, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.bucket, f.key, f.body, f.size, f.digest, f.contentType = bucket, key, body, size, sha256, contentType
	return nil
}

func (f *fakeStore) PresignGet(_ context.Context, bucket, key string, ttl time.Duration) (string, error) {
	f.presignTTL = ttl
	return "https://objects.example.com/" + bucket + "/" + key + "?signed", nil
}

func TestUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.tar.zst")
	content := []byte("archive bytes")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	store := &fakeStore{}
	url, err := Upload(context.Background(), UploadConfig{
		Path:       path,
		Bucket:     "fixtures",
		Store:      store,
		PresignTTL: time.Hour,
		Stdout:     io.Discard,
	})
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, "fixtures", store.bucket)
	assert.Equal(t, "snapshot.tar.zst", store.key)
	assert.Equal(t, content, store.body)
	assert.Equal(t, int64(len(content)), store.size)
	assert.Equal(t, hex.EncodeToString(sum[:]), store.digest)
	assert.Equal(t, archiveContentType, store.contentType)
	assert.Equal(t, time.Hour, store.presignTTL)
	assert.Equal(t, "https://objects.example.com/fixtures/snapshot.tar.zst?signed", url)
}

func TestUploadWithoutPresign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.tar.zst")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	store := &fakeStore{}
	url, err := Upload(context.Background(), UploadConfig{Path: path, Bucket: "b", Key: "nightly/1.tar.zst", Store: store, Stdout: io.Discard})
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, "nightly/1.tar.zst", store.key)
	assert.Zero(t, store.presignTTL)
}

func TestUploadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.tar.zst")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Upload(context.Background(), UploadConfig{Bucket: "b", Store: &fakeStore{}})
	assert.Error(t, err)
	_, err = Upload(context.Background(), UploadConfig{Path: path, Store: &fakeStore{}})
	assert.Error(t, err)
	_, err = Upload(context.Background(), UploadConfig{Path: path, Bucket: "b"})
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = Upload(context.Background(), UploadConfig{Path: path, Bucket: "b", Store: &fakeStore{putErr: boom}, Stdout: io.Discard})
	assert.True(t, errors.Is(err, boom))
}
