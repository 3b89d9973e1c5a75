package main

import (
	"time"

	"github.com/JaimeStill/vouch/internal/api"
	"github.com/JaimeStill/vouch/internal/config"
	"github.com/JaimeStill/vouch/internal/infrastructure"
	"github.com/JaimeStill/vouch/pkg/module"
	"github.com/JaimeStill/vouch/pkg/ocr"
)

// Server owns the infrastructure, the routed API module, and the HTTP listener.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

// NewServer builds every system from cfg. engine performs OCR for the API.
func NewServer(cfg *config.Config, engine ocr.Engine) (*Server, error) {
	infra, err := infrastructure.New(cfg, engine)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	router.Mount(apiModule)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"storage", cfg.Storage.Provider,
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, router, infra.Logger, cfg.ShutdownTimeoutDuration()),
	}, nil
}

// Start registers lifecycle hooks, starts listening, and reports readiness
// once every startup hook has finished.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("service not ready", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown stops the listener and closes infrastructure within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.HandleNative("GET /healthz", healthz)
	router.HandleNative("GET /readyz", readyz(infra.Lifecycle, infra.Database))
	return router
}
