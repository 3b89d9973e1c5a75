// Package infrastructure assembles the shared systems every domain module
// depends on: lifecycle coordination, logging, database, blob storage, and OCR.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/vouch/internal/config"
	"github.com/JaimeStill/vouch/pkg/database"
	"github.com/JaimeStill/vouch/pkg/lifecycle"
	"github.com/JaimeStill/vouch/pkg/ocr"
	"github.com/JaimeStill/vouch/pkg/storage"
)

// Infrastructure holds the core systems required by domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	OCR       ocr.Engine
}

// New initializes every system from cfg without starting them. engine is
// bounded by the configured OCR timeout.
func New(cfg *config.Config, engine ocr.Engine) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	logger.Info(
		"ocr engine configured",
		"engine", engine.Name(),
		"languages", cfg.OCR.Languages,
		"timeout", cfg.OCR.TimeoutDuration(),
	)

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		OCR:       ocr.WithTimeout(engine, cfg.OCR.TimeoutDuration()),
	}, nil
}

// Start registers database and storage hooks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
