package ocr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JaimeStill/vouch/pkg/storage"
)

type storageExtractor struct {
	engine  Engine
	store   storage.System
	timeout time.Duration
	logger  *slog.Logger
}

// NewExtractor returns an Extractor that reads images from store and
// recognizes them with engine. A positive timeout bounds each Extract call,
// download included.
func NewExtractor(engine Engine, store storage.System, timeout time.Duration, logger *slog.Logger) Extractor {
	return &storageExtractor{
		engine:  engine,
		store:   store,
		timeout: timeout,
		logger:  logger.With("system", "ocr", "engine", engine.Name()),
	}
}

func (e *storageExtractor) Extract(ctx context.Context, key string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	blob, err := e.store.Download(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrExtraction, key, err)
	}
	defer blob.Body.Close()

	data, err := io.ReadAll(blob.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrExtraction, key, err)
	}

	start := time.Now()
	text, err := e.engine.Recognize(ctx, data)
	if err != nil {
		e.logger.Warn("recognition failed", "key", key, "error", err)
		return "", wrap(err)
	}

	e.logger.Debug(
		"recognition complete",
		"key", key,
		"chars", len([]rune(text)),
		"duration", time.Since(start),
	)
	return text, nil
}
