// Package storage provides blob storage behind a provider-neutral System,
// with Azure Blob Storage and MinIO (S3-compatible) implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/vouch/pkg/lifecycle"
)

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that ensures the container or bucket exists.
	Start(lc *lifecycle.Coordinator) error
	// Upload writes size bytes from reader to key. A negative size means unknown.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Download opens the blob at key. The caller must close Blob.Body.
	// Returns ErrNotFound if the blob does not exist.
	Download(ctx context.Context, key string) (*Blob, error)
	// Delete removes the blob at key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob exists at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Blob is an open blob stream with its stored metadata.
type Blob struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// New creates the System for cfg.Provider. No network calls are made
// until the startup hook registered by Start runs.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderAzure:
		return newAzure(cfg, logger)
	case ProviderMinio:
		return newMinio(cfg, logger)
	}
	return nil, fmt.Errorf("unknown storage provider: %q", cfg.Provider)
}

// ValidateKey rejects empty keys and keys with path traversal segments.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
