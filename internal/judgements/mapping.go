package judgements

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/vouch/pkg/query"
	"github.com/JaimeStill/vouch/pkg/repository"
)

const columns = "id, image_path, ocr_text, is_identified, created_at, updated_at"

var projection = query.
	NewProjectionMap("public", "photo_judgements", "j").
	Project("id", "ID").
	Project("image_path", "ImagePath").
	Project("ocr_text", "ExtractedText").
	Project("is_identified", "IsIdentified").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var insertionOrder = query.SortField{Field: "ID"}

// Filters narrows List results. Nil fields are ignored; the zero value lists everything.
// Text is a case-insensitive contains match on the extracted text.
type Filters struct {
	IsIdentified *bool   `json:"identified,omitempty"`
	Text         *string `json:"text,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("IsIdentified", f.IsIdentified).
		WhereContains("ExtractedText", f.Text)
}

// FiltersFromQuery reads the identified and text query parameters.
// Unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("identified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsIdentified = &b
		}
	}

	if t := values.Get("text"); t != "" {
		f.Text = &t
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.ImagePath,
		&r.ExtractedText,
		&r.IsIdentified,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
