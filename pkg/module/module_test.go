package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/vouch/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestNewPrefixValidation(t *testing.T) {
	tests := []struct {
		prefix  string
		wantErr bool
	}{
		{"/api", false},
		{"", true},
		{"api", true},
		{"/", true},
		{"/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			_, err := module.New(tt.prefix, http.NewServeMux())
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%q) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
			}
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	m, err := module.New("/api", echoPath())
	if err != nil {
		t.Fatal(err)
	}

	router := module.NewRouter()
	router.Mount(m)
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("native"))
	})

	tests := []struct {
		name string
		path string
		want string
		code int
	}{
		{"module root", "/api", "/", http.StatusOK},
		{"module path", "/api/documents/1", "/documents/1", http.StatusOK},
		{"trailing slash", "/api/documents/", "/documents", http.StatusOK},
		{"native", "/healthz", "native", http.StatusOK},
		{"similar prefix is not the module", "/apix", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.code {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.code)
			}
			if tt.want != "" && rec.Body.String() != tt.want {
				t.Errorf("body: got %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	m, err := module.New("/api", echoPath())
	if err != nil {
		t.Fatal(err)
	}
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", m.Prefix())
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/api/documents", nil))

	if got := rec.Header().Get("X-Module"); got != "/api" {
		t.Errorf("X-Module: got %q, want /api", got)
	}
}
