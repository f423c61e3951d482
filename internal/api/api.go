// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/campward/campward/internal/config"
	"github.com/campward/campward/internal/infrastructure"
	"github.com/campward/campward/pkg/middleware"
	"github.com/campward/campward/pkg/module"
	"github.com/campward/campward/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec := buildSpec(cfg.API.OpenAPI.Title, cfg.API.OpenAPI.Description, cfg.Version, cfg.API.BasePath)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
