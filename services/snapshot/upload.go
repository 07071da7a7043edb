package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const archiveContentType = "application/zstd"

// ObjectStore is the subset of pkg/s3.Client an upload needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, sha256, contentType string) error
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// UploadConfig configures a snapshot upload.
type UploadConfig struct {
	Path   string
	Bucket string
	// Key defaults to the archive file name.
	Key   string
	Store ObjectStore
	// PresignTTL, when positive, returns a presigned GET URL for the object.
	PresignTTL time.Duration
	Stdout     io.Writer
}

// Upload stores the archive at Path in Bucket and returns a presigned URL when
// PresignTTL is set.
func Upload(ctx context.Context, cfg UploadConfig) (string, error) {
	if cfg.Path == "" {
		return "", errors.New("snapshot path is required")
	}
	if cfg.Bucket == "" {
		return "", errors.New("bucket is required")
	}
	if cfg.Store == nil {
		return "", errors.New("object store is required")
	}
	if cfg.Key == "" {
		cfg.Key = filepath.Base(cfg.Path)
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	digest, size, err := fileDigest(cfg.Path)
	if err != nil {
		return "", err
	}

	file, err := os.Open(cfg.Path)
	if err != nil {
		return "", fmt.Errorf("open %q for upload: %w", cfg.Path, err)
	}
	defer file.Close()

	if err := cfg.Store.PutObject(ctx, cfg.Bucket, cfg.Key, file, size, digest, archiveContentType); err != nil {
		return "", fmt.Errorf("upload %q: %w", cfg.Key, err)
	}
	fmt.Fprintf(cfg.Stdout, "uploaded s3://%s/%s (%d bytes)\n", cfg.Bucket, cfg.Key, size)

	if cfg.PresignTTL <= 0 {
		return "", nil
	}
	url, err := cfg.Store.PresignGet(ctx, cfg.Bucket, cfg.Key, cfg.PresignTTL)
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", cfg.Key, err)
	}
	return url, nil
}

func fileDigest(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	hash := sha256.New()
	size, err := io.Copy(hash, file)
	if err != nil {
		return "", 0, fmt.Errorf("hash %q: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), size, nil
}
