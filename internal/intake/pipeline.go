package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/vouch/internal/classifier"
	"github.com/JaimeStill/vouch/internal/judgements"
	"github.com/JaimeStill/vouch/internal/photos"
	"github.com/JaimeStill/vouch/pkg/ocr"
)

type pipeline struct {
	photos     *photos.Service
	extractor  ocr.Extractor
	engine     ocr.Engine
	classifier *classifier.Classifier
	records    judgements.System
	logger     *slog.Logger
}

// New creates the intake System. extractor reads stored photos during Run;
// engine reads raw uploads during Judge.
func New(
	photoSvc *photos.Service,
	extractor ocr.Extractor,
	engine ocr.Engine,
	cls *classifier.Classifier,
	records judgements.System,
	logger *slog.Logger,
) System {
	return &pipeline{
		photos:     photoSvc,
		extractor:  extractor,
		engine:     engine,
		classifier: cls,
		records:    records,
		logger:     logger.With("system", "intake"),
	}
}

func (p *pipeline) Handler(maxUploadSize int64) *Handler {
	return NewHandler(p, p.logger, maxUploadSize)
}

func (p *pipeline) Run(ctx context.Context, up Upload) (*Result, error) {
	start := time.Now()
	logger := p.logger.With("filename", up.Filename, "size", len(up.Data))
	logger.Info("intake", "stage", Received)

	key, err := p.photos.Store(ctx, up.Data, up.Filename)
	if err != nil {
		if photos.IsRejected(err) {
			return nil, p.fail(logger, ValidationFailed, err)
		}
		return nil, p.fail(logger, StorageFailed, err)
	}
	logger = logger.With("key", key)
	logger.Info("intake", "stage", Stored)

	text, err := p.extractor.Extract(ctx, key)
	if err != nil {
		p.photos.Remove(context.WithoutCancel(ctx), key)
		return nil, p.fail(logger, ExtractionFailed, err)
	}
	logger.Info("intake", "stage", Extracted, "chars", len([]rune(text)))

	judgement := p.classifier.Classify(text)
	logger.Info("intake", "stage", Classified, "result", judgement.Label(), "evidence", evidence(judgement))

	rec, err := p.records.Create(ctx, judgements.NewCommand(key, text, judgement.Matched))
	if err != nil {
		p.photos.Remove(context.WithoutCancel(ctx), key)
		return nil, p.fail(logger, PersistenceFailed, err)
	}
	logger.Info("intake", "stage", Persisted, "id", rec.ID)

	result := &Result{
		Result:   judgement.Label(),
		Text:     text,
		FilePath: key,
		Record:   rec,
	}
	logger.Info("intake", "stage", Responded, "duration", time.Since(start))
	return result, nil
}

func (p *pipeline) Judge(ctx context.Context, up Upload) (*Preview, error) {
	logger := p.logger.With("filename", up.Filename, "size", len(up.Data), "preview", true)
	logger.Info("intake", "stage", Received)

	if _, err := p.photos.Validate(up.Data, up.Filename); err != nil {
		return nil, p.fail(logger, ValidationFailed, err)
	}

	text, err := p.engine.Recognize(ctx, up.Data)
	if err != nil {
		return nil, p.fail(logger, ExtractionFailed, err)
	}
	logger.Info("intake", "stage", Extracted, "chars", len([]rune(text)))

	judgement := p.classifier.Classify(text)
	logger.Info("intake", "stage", Classified, "result", judgement.Label(), "evidence", evidence(judgement))

	return &Preview{
		Result:   judgement.Label(),
		Text:     text,
		Evidence: judgement.Evidence,
	}, nil
}

func (p *pipeline) List(ctx context.Context, filters judgements.Filters) ([]judgements.Record, error) {
	records, err := p.records.List(ctx, filters)
	if err != nil {
		p.logger.Error("list judgements failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return records, nil
}

func (p *pipeline) Find(ctx context.Context, id int64) (*judgements.Record, error) {
	rec, err := p.records.Find(ctx, id)
	if err != nil {
		if MapHTTPStatus(err) >= 500 {
			p.logger.Error("find judgement failed", "id", id, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return nil, err
	}
	return rec, nil
}

func (p *pipeline) fail(logger *slog.Logger, state State, err error) error {
	if state == ValidationFailed {
		logger.Warn("intake", "stage", state, "error", err)
	} else {
		logger.Error("intake", "stage", state, "error", err)
	}
	return &StageError{State: state, Err: err}
}

func evidence(j classifier.Judgement) string {
	if j.Evidence == nil {
		return ""
	}
	return *j.Evidence
}
