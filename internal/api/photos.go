package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/vouch/internal/photos"
	"github.com/JaimeStill/vouch/pkg/handlers"
	"github.com/JaimeStill/vouch/pkg/openapi"
	"github.com/JaimeStill/vouch/pkg/routes"
	"github.com/JaimeStill/vouch/pkg/storage"
)

type photoHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newPhotoHandler(store storage.System, logger *slog.Logger) *photoHandler {
	return &photoHandler{
		store:  store,
		logger: logger.With("handler", "photos"),
	}
}

func (h *photoHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/photos",
		Tags:   []string{"Photos"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download, OpenAPI: downloadDocs},
		},
	}
}

var downloadDocs = &openapi.Operation{
	Summary:     "Download a stored photo",
	Description: "key is the file_path returned by an upload without its photos/ prefix.",
	Parameters: []*openapi.Parameter{
		openapi.PathParam("key", "string", "", "Photo key, e.g. <uuid>/card.png"),
	},
	Responses: map[int]*openapi.Response{
		200: {
			Description: "Photo bytes",
			Content: map[string]*openapi.MediaType{
				"image/jpeg": {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
				"image/png":  {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
			},
		},
		400: openapi.ResponseRef(openapi.BadRequest),
		404: openapi.ResponseRef(openapi.NotFound),
		500: openapi.ResponseRef(openapi.InternalError),
	},
}

// download streams a stored photo. The key is relative to the photos namespace,
// so /photos/<id>/card.png serves the file_path photos/<id>/card.png.
func (h *photoHandler) download(w http.ResponseWriter, r *http.Request) {
	key := photos.Prefix + r.PathValue("key")

	if err := storage.ValidateKey(key); err != nil || key == photos.Prefix {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, storage.ErrInvalidKey)
		return
	}

	blob, err := h.store.Download(r.Context(), key)
	if err != nil {
		status := storage.MapHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("photo download failed", "key", key, "error", err)
			err = errors.New("photo download failed")
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(key)))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("photo stream interrupted", "key", key, "error", err)
	}
}
