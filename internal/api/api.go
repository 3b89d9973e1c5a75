// Package api assembles the API module: domain systems, routes, and middleware.
package api

import (
	"net/http"

	"github.com/JaimeStill/vouch/internal/config"
	"github.com/JaimeStill/vouch/internal/infrastructure"
	"github.com/JaimeStill/vouch/pkg/middleware"
	"github.com/JaimeStill/vouch/pkg/module"
	"github.com/JaimeStill/vouch/pkg/openapi"
)

// NewModule creates the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, spec, domain, runtime); err != nil {
		return nil, err
	}

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
