package api

import (
	"net/http"

	"github.com/JaimeStill/docmatrix/internal/config"
	"github.com/JaimeStill/docmatrix/internal/credits"
	"github.com/JaimeStill/docmatrix/internal/documents"
	"github.com/JaimeStill/docmatrix/internal/scans"
	"github.com/JaimeStill/docmatrix/pkg/openapi"
	"github.com/JaimeStill/docmatrix/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	documentsHandler := documents.NewHandler(
		domain.Documents,
		runtime.Logger,
		runtime.Validator,
		runtime.Pagination,
		cfg.Storage.MaxUploadSizeBytes(),
	)
	scansHandler := scans.NewHandler(domain.Scans, domain.Credits, runtime.Logger, runtime.Validator, cfg.Scan)
	creditsHandler := credits.NewHandler(domain.Credits, runtime.Logger)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		documentsHandler.Routes(),
		scansHandler.Routes(),
		creditsHandler.Routes(),
	)
}
