package intake

import "github.com/JaimeStill/vouch/pkg/openapi"

type operations struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Upload *openapi.Operation
	Judge  *openapi.Operation
}

var docs = operations{
	List: &openapi.Operation{
		Summary:     "List judgements",
		Description: "Returns every persisted judgement in insertion order. An empty store yields [].",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("identified", "boolean", "Only records with this judgement"),
			openapi.QueryParam("text", "string", "Case-insensitive substring of the extracted text"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Judgements", openapi.ArrayOf("Judgement")),
			500: openapi.ResponseRef(openapi.InternalError),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find a judgement",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "integer", "int64", "Judgement id"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Judgement", openapi.SchemaRef("Judgement")),
			400: openapi.ResponseRef(openapi.BadRequest),
			404: openapi.ResponseRef(openapi.NotFound),
			500: openapi.ResponseRef(openapi.InternalError),
		},
	},
	Upload: &openapi.Operation{
		Summary: "Upload a photo",
		Description: "Stores the photo, reads its text with OCR, judges it by keyword, and " +
			"persists the judgement. A failure after storing removes the photo.",
		RequestBody: openapi.MultipartFile(FormField, "jpg, jpeg, or png, at most 2048 KB"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Intake result", openapi.SchemaRef("IntakeResult")),
			400: openapi.ResponseRef(openapi.BadRequest),
			413: openapi.ResponseRef(openapi.PayloadTooLarge),
			500: openapi.ResponseRef(openapi.InternalError),
			502: openapi.ResponseRef(openapi.BadGateway),
			503: openapi.ResponseRef(openapi.ServiceUnavailable),
		},
	},
	Judge: &openapi.Operation{
		Summary:     "Judge a photo without saving",
		Description: "Reads and judges the photo. Nothing is stored or persisted.",
		RequestBody: openapi.MultipartFile(FormField, "jpg, jpeg, or png, at most 2048 KB"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Judgement preview", openapi.SchemaRef("JudgementPreview")),
			400: openapi.ResponseRef(openapi.BadRequest),
			413: openapi.ResponseRef(openapi.PayloadTooLarge),
			502: openapi.ResponseRef(openapi.BadGateway),
		},
	},
}

func schemas() map[string]*openapi.Schema {
	label := &openapi.Schema{
		Type: "string",
		Enum: []any{"identity-document", "unknown"},
	}

	return map[string]*openapi.Schema{
		"IntakeResult": {
			Type:     "object",
			Required: []string{"result", "text", "file_path"},
			Properties: map[string]*openapi.Schema{
				"result":    label,
				"text":      {Type: "string", Description: "Text read from the photo"},
				"file_path": {Type: "string", Example: "photos/6f1c0b7e-2a4d-4a59-9d1e-3c2b8f0e7a11/card.png"},
			},
		},
		"JudgementPreview": {
			Type:     "object",
			Required: []string{"result", "text", "evidence"},
			Properties: map[string]*openapi.Schema{
				"result":   label,
				"text":     {Type: "string"},
				"evidence": {Type: "string", Description: "First matching keyword, null when unknown"},
			},
		},
		"Judgement": {
			Type:     "object",
			Required: []string{"id", "image_path", "ocr_text", "is_identified", "created_at", "updated_at"},
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "integer", Format: "int64"},
				"image_path":    {Type: "string"},
				"ocr_text":      {Type: "string"},
				"is_identified": {Type: "boolean"},
				"created_at":    {Type: "string", Format: "date-time"},
				"updated_at":    {Type: "string", Format: "date-time"},
			},
		},
	}
}
