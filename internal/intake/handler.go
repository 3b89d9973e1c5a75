package intake

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/vouch/internal/judgements"
	"github.com/JaimeStill/vouch/internal/photos"
	"github.com/JaimeStill/vouch/pkg/handlers"
	"github.com/JaimeStill/vouch/pkg/routes"
)

// FormField is the multipart field carrying the photo.
const FormField = "image"

// multipartOverhead is the body allowance above the upload limit for
// multipart boundaries and part headers.
const multipartOverhead = 64 * 1024

var errInvalidID = errors.New("invalid judgement id")

// Handler provides HTTP endpoints for intake operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "intake"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for intake endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/documents",
		Tags:    []string{"Documents"},
		Schemas: schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: docs.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: docs.Find},
			{Method: "POST", Pattern: "", Handler: h.Upload, OpenAPI: docs.Upload},
			{Method: "POST", Pattern: "/judge", Handler: h.Judge, OpenAPI: docs.Judge},
		},
	}
}

// Upload runs the intake pipeline on the multipart "image" field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	up, err := h.readUpload(w, r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.sys.Run(r.Context(), up)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Judge classifies the multipart "image" field without persisting anything.
func (h *Handler) Judge(w http.ResponseWriter, r *http.Request) {
	up, err := h.readUpload(w, r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	preview, err := h.sys.Judge(r.Context(), up)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, preview)
}

// List returns every persisted judgement matching the query filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.sys.List(r.Context(), judgements.FiltersFromQuery(r.URL.Query()))
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Find returns a single judgement by its integer id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	rec, err := h.sys.Find(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Upload{}, &StageError{State: ValidationFailed, Err: photos.ErrTooLarge}
		}
		return Upload{}, &StageError{
			State: ValidationFailed,
			Err:   fmt.Errorf("malformed multipart form: %w", err),
		}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(FormField)
	if err != nil {
		return Upload{}, &StageError{
			State: ValidationFailed,
			Err:   fmt.Errorf("multipart field %q required", FormField),
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, &StageError{
			State: ValidationFailed,
			Err:   fmt.Errorf("read upload: %w", err),
		}
	}

	return Upload{Data: data, Filename: header.Filename}, nil
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), publicError(err))
}
