// Package api assembles the document, scan, and credit systems into the
// module served under the configured base path.
package api

import (
	"net/http"

	"github.com/JaimeStill/docmatrix/internal/config"
	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/internal/infrastructure"
	"github.com/JaimeStill/docmatrix/pkg/middleware"
	"github.com/JaimeStill/docmatrix/pkg/module"
	"github.com/JaimeStill/docmatrix/pkg/openapi"
)

const specPath = "/openapi.json"

// NewModule builds the API module. Every route except the OpenAPI document
// requires caller identity headers.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime, cfg)
	if err != nil {
		return nil, err
	}

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET "+specPath, openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(identity.Middleware(runtime.Logger, specPath))

	return m, nil
}
