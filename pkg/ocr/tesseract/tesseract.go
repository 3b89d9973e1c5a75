// Package tesseract implements ocr.Engine on the Tesseract library through gosseract.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/JaimeStill/vouch/pkg/ocr"
)

// Engine is a Tesseract-backed ocr.Engine. A fresh client is created per
// call since gosseract clients are not safe for concurrent use.
type Engine struct {
	languages      []string
	pageSegMode    int
	tessdataPrefix string
	newClient      func() *gosseract.Client
}

// New creates an Engine from cfg.
func New(cfg *ocr.Config) *Engine {
	return &Engine{
		languages:      cfg.Languages,
		pageSegMode:    cfg.PageSegMode,
		tessdataPrefix: cfg.TessdataPrefix,
		newClient:      gosseract.NewClient,
	}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs Tesseract over image and returns the trimmed plain text.
// The cgo call itself cannot be interrupted; callers bound it with ocr.WithTimeout.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := e.newClient()
	defer c.Close()

	if e.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if e.pageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.pageSegMode)); err != nil {
			return "", fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
