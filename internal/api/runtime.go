package api

import (
	"time"

	"github.com/JaimeStill/vouch/internal/config"
	"github.com/JaimeStill/vouch/internal/infrastructure"
)

// Runtime extends Infrastructure with API-scoped settings.
type Runtime struct {
	*infrastructure.Infrastructure
	MaxUploadSize int64
	OCRTimeout    time.Duration
	Keywords      []string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		MaxUploadSize:  cfg.API.MaxUploadSizeBytes(),
		OCRTimeout:     cfg.OCR.TimeoutDuration(),
		Keywords:       cfg.Classifier.Keywords,
	}
}
