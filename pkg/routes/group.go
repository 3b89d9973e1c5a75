// Package routes declares method-qualified route groups, registers them on a
// ServeMux, and documents them in an OpenAPI spec.
package routes

import (
	"net/http"

	"github.com/JaimeStill/vouch/pkg/openapi"
)

// Group is a set of routes and nested groups sharing a path prefix. Tags
// apply to every documented route in the group that sets none of its own.
// Schemas are added to the spec components when the group is documented.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
	Schemas  map[string]*openapi.Schema
}

// Route binds an HTTP method and pattern to a handler. Pattern is appended
// to the enclosing group prefixes and may use ServeMux wildcards. Routes
// without an OpenAPI operation are served but left out of the spec.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Register adds every route in groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		g.register(mux, "")
	}
}

// Document adds every route in groups that carries an operation to spec.
func Document(spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		g.document(spec, "", nil)
	}
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}

func (g Group) document(spec *openapi.Spec, parent string, tags []string) {
	prefix := parent + g.Prefix
	if len(g.Tags) > 0 {
		tags = g.Tags
	}
	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, r := range g.Routes {
		if r.OpenAPI == nil {
			continue
		}
		op := *r.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		spec.AddOperation(r.Method, prefix+r.Pattern, &op)
	}
	for _, child := range g.Children {
		child.document(spec, prefix, tags)
	}
}
