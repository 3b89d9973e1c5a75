// Package ocr defines the text extraction contract used by the intake pipeline.
// Engines turn image bytes into text; an Extractor resolves a storage key to
// bytes and hands them to an Engine. Engines are small and transport-agnostic
// so they can be backed by a native library, a local binary, or a remote API.
package ocr

import (
	"context"
	"errors"
	"fmt"
)

// ErrExtraction is wrapped by every failure to produce text from an image:
// an unreadable source, an engine fault, or an exceeded deadline.
var ErrExtraction = errors.New("text extraction failed")

// Engine recognizes text in an encoded image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Extractor recognizes text in a previously stored image.
// It must not modify the stored image.
type Extractor interface {
	Extract(ctx context.Context, key string) (string, error)
}

func wrap(err error) error {
	if errors.Is(err, ErrExtraction) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrExtraction, err)
}
