// Package judgements persists the outcome of each photo intake: where the
// photo is stored, the text read from it, and whether it was identified as
// an identity document. Records are append-only.
package judgements

import "time"

// Record is a persisted judgement.
type Record struct {
	ID            int64     `json:"id"`
	ImagePath     string    `json:"image_path"`
	ExtractedText string    `json:"ocr_text"`
	IsIdentified  bool      `json:"is_identified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCommand carries the values written for a new record.
// ID and timestamps are assigned by the store.
type CreateCommand struct {
	ImagePath     string
	ExtractedText string
	IsIdentified  bool
}

// NewCommand builds a CreateCommand from its three persisted values.
func NewCommand(imagePath, text string, identified bool) CreateCommand {
	return CreateCommand{
		ImagePath:     imagePath,
		ExtractedText: text,
		IsIdentified:  identified,
	}
}
