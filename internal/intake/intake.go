// Package intake runs the photo intake pipeline: a received upload is
// validated, stored, read with OCR, judged by keyword, persisted, and
// answered. Each stage transition is logged, and a failure after the photo
// is stored removes it again so no orphan photos outlive a failed intake.
package intake

import (
	"context"

	"github.com/JaimeStill/vouch/internal/judgements"
)

// State names a pipeline stage. The *Failed states are terminal.
type State string

const (
	Received   State = "received"
	Stored     State = "stored"
	Extracted  State = "extracted"
	Classified State = "classified"
	Persisted  State = "persisted"
	Responded  State = "responded"

	ValidationFailed  State = "validation_failed"
	StorageFailed     State = "storage_failed"
	ExtractionFailed  State = "extraction_failed"
	PersistenceFailed State = "persistence_failed"
)

// Upload is a received photo.
type Upload struct {
	Data     []byte
	Filename string
}

// Result is the response to a completed intake.
type Result struct {
	Result   string             `json:"result"`
	Text     string             `json:"text"`
	FilePath string             `json:"file_path"`
	Record   *judgements.Record `json:"-"`
}

// Preview is a judgement computed without storing the photo or a record.
type Preview struct {
	Result   string  `json:"result"`
	Text     string  `json:"text"`
	Evidence *string `json:"evidence"`
}

// System defines the intake operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Run executes the full pipeline for one upload.
	Run(ctx context.Context, up Upload) (*Result, error)
	// Judge validates, reads, and classifies an upload without side effects.
	Judge(ctx context.Context, up Upload) (*Preview, error)
	// List returns persisted judgements in insertion order.
	List(ctx context.Context, filters judgements.Filters) ([]judgements.Record, error)
	// Find returns one persisted judgement.
	Find(ctx context.Context, id int64) (*judgements.Record, error)
}
