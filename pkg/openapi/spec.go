// Package openapi builds an OpenAPI 3.1 document from route metadata and
// serves it as pre-rendered JSON.
package openapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Spec is the root OpenAPI document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec creates an empty 3.1 document with the shared error responses.
func NewSpec(cfg *Config, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:       cfg.Title,
			Version:     version,
			Description: cfg.Description,
		},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// AddServer appends a server URL, typically the API base path.
func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddOperation records op under method and a ServeMux-style path. Wildcards
// such as {key...} are written as plain {key} path templates.
func (s *Spec) AddOperation(method, path string, op *Operation) {
	path = TemplatePath(path)
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// TemplatePath converts ServeMux wildcards to OpenAPI path templates.
func TemplatePath(path string) string {
	if path == "" {
		return "/"
	}
	return strings.ReplaceAll(path, "...}", "}")
}

// MarshalJSON renders the document as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec serves the pre-rendered document.
func ServeSpec(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
