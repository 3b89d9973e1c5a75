// Package photos validates uploaded identity photos and keeps them in blob storage.
package photos

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/vouch/pkg/formatting"
	"github.com/JaimeStill/vouch/pkg/storage"
)

// MaxSize is the largest accepted photo in bytes (2048 KB).
const MaxSize int64 = 2048 * 1024

// Prefix is the storage namespace for photos.
const Prefix = "photos/"

var contentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Service validates and stores photos.
type Service struct {
	store   storage.System
	logger  *slog.Logger
	maxSize int64
}

// New creates a Service. maxSize may lower the limit below MaxSize but never
// raise it; zero or negative values select MaxSize.
func New(store storage.System, logger *slog.Logger, maxSize int64) *Service {
	if maxSize <= 0 || maxSize > MaxSize {
		maxSize = MaxSize
	}
	return &Service{
		store:   store,
		logger:  logger.With("system", "photos"),
		maxSize: maxSize,
	}
}

// MaxSize returns the effective upload limit in bytes.
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// Validate checks data against the size limit and the accepted image types and
// returns the detected content type. A name without an extension is accepted;
// a name with one must use jpg, jpeg, or png.
func (s *Service) Validate(data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidImage)
	}

	if int64(len(data)) > s.maxSize {
		return "", fmt.Errorf(
			"%w: %s exceeds %s",
			ErrTooLarge,
			formatting.FormatBytes(int64(len(data)), 1),
			formatting.FormatBytes(s.maxSize, 0),
		)
	}

	if ext := strings.ToLower(filepath.Ext(name)); ext != "" && !extensions[ext] {
		return "", fmt.Errorf("%w: unsupported extension %q", ErrInvalidImage, ext)
	}

	ct := http.DetectContentType(data)
	if !contentTypes[ct] {
		return "", fmt.Errorf("%w: unsupported content type %q", ErrInvalidImage, ct)
	}

	return ct, nil
}

// Store validates data and uploads it under a new unique key, which it returns.
func (s *Service) Store(ctx context.Context, data []byte, name string) (string, error) {
	ct, err := s.Validate(data, name)
	if err != nil {
		return "", err
	}

	key := buildKey(uuid.New(), sanitizeFilename(name, ct))

	if err := s.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), ct); err != nil {
		return "", fmt.Errorf("%w: upload %s: %w", ErrStorage, key, err)
	}

	s.logger.Info("photo stored", "key", key, "size", len(data), "content_type", ct)
	return key, nil
}

// Remove deletes a stored photo. Failures are logged and not returned.
func (s *Service) Remove(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("photo delete failed", "key", key, "error", err)
		return
	}
	s.logger.Info("photo removed", "key", key)
}

func buildKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("%s%s/%s", Prefix, id, filename)
}

func sanitizeFilename(name, contentType string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" || strings.Contains(name, "..") {
		name = "photo" + defaultExtension(contentType)
	}
	return name
}

func defaultExtension(contentType string) string {
	if contentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}
