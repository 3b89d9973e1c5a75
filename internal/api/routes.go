package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/vouch/pkg/openapi"
	"github.com/JaimeStill/vouch/pkg/routes"
)

// SpecPath serves the generated OpenAPI document within the API module.
const SpecPath = "/openapi.json"

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, domain *Domain, runtime *Runtime) error {
	groups := []routes.Group{
		domain.Intake.Handler(runtime.MaxUploadSize).Routes(),
		newPhotoHandler(runtime.Storage, runtime.Logger).routes(),
	}

	routes.Register(mux, groups...)
	routes.Document(spec, groups...)

	body, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("render openapi spec: %w", err)
	}
	mux.HandleFunc("GET "+SpecPath, openapi.ServeSpec(body))
	return nil
}
