package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/vouch/pkg/openapi"
)

func TestTemplatePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/documents", "/documents"},
		{"/documents/{id}", "/documents/{id}"},
		{"/photos/{key...}", "/photos/{key}"},
		{"", "/"},
	}

	for _, tt := range tests {
		if got := openapi.TemplatePath(tt.path); got != tt.want {
			t.Errorf("TemplatePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestAddOperation(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "t"}, "1")
	list := &openapi.Operation{Summary: "list"}
	upload := &openapi.Operation{Summary: "upload"}

	spec.AddOperation("GET", "/documents", list)
	spec.AddOperation("post", "/documents", upload)

	item := spec.Paths["/documents"]
	if item == nil || item.Get != list || item.Post != upload {
		t.Fatalf("path item = %+v, want get and post on one path", item)
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Intake")

	cfg := openapi.Config{}
	if err := cfg.Finalize(&openapi.Env{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.Title != "Intake" {
		t.Errorf("title = %q, want Intake", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("description should default")
	}

	cfg.Merge(&openapi.Config{Description: "overlay"})
	if cfg.Title != "Intake" || cfg.Description != "overlay" {
		t.Errorf("after merge: %+v", cfg)
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "Vouch API"}, "0.1.0")
	spec.AddOperation("GET", "/documents", &openapi.Operation{
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("ok", openapi.ArrayOf("Judgement")),
			500: openapi.ResponseRef(openapi.InternalError),
		},
	})

	body, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(body)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	responses := doc["paths"].(map[string]any)["/documents"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	ref := responses["500"].(map[string]any)["$ref"]
	if ref != "#/components/responses/InternalError" {
		t.Errorf("500 $ref = %v", ref)
	}

	shared := doc["components"].(map[string]any)["responses"].(map[string]any)
	for _, name := range []string{
		openapi.BadRequest, openapi.NotFound, openapi.PayloadTooLarge,
		openapi.InternalError, openapi.BadGateway, openapi.ServiceUnavailable,
	} {
		if _, ok := shared[name]; !ok {
			t.Errorf("shared response %s missing", name)
		}
	}
}
