package scans

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/documents"
	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/decode"
	"github.com/JaimeStill/docmatrix/pkg/handlers"
	"github.com/JaimeStill/docmatrix/pkg/routes"
)

// CreditGate charges a non-admin requester for one scan.
type CreditGate interface {
	Deduct(ctx context.Context, userID uuid.UUID) error
}

// Handler provides HTTP endpoints for scan operations.
type Handler struct {
	sys      System
	credits  CreditGate
	logger   *slog.Logger
	validate *validator.Validate
	cfg      Config
}

// NewHandler creates a scan handler.
func NewHandler(sys System, credits CreditGate, logger *slog.Logger, validate *validator.Validate, cfg Config) *Handler {
	return &Handler{
		sys:      sys,
		credits:  credits,
		logger:   logger.With("handler", "scans"),
		validate: validate,
		cfg:      cfg,
	}
}

// Routes returns the scan endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/scans",
		Tags:        []string{"Scans"},
		Description: "Near-duplicate scanning and recorded matches",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Scan, OpenAPI: Spec.Scan},
			{Method: "GET", Pattern: "/{documentId}/matches", Handler: h.Matches, OpenAPI: Spec.Matches},
			{Method: "GET", Pattern: "/{documentId}/export", Handler: h.Export, OpenAPI: Spec.Export},
			{Method: "GET", Pattern: "/{documentId}/history", Handler: h.History, OpenAPI: Spec.History},
		},
	}
}

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	who, err := identity.FromRequest(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, err)
		return
	}

	cmd, err := decode.JSON[ScanCommand](r, h.validate)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	threshold := h.cfg.DefaultThreshold
	if cmd.Threshold != nil {
		threshold = *cmd.Threshold
	}

	if !who.IsAdmin() {
		if err := h.credits.Deduct(r.Context(), who.UserID); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	result, err := h.sys.Scan(r.Context(), who.UserID, cmd.DocumentID, threshold)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ScanResponse{
		Message: "Document scanned successfully",
		Scan:    result,
	})
}

func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	who, id, threshold, ok := h.previousRequest(w, r)
	if !ok {
		return
	}

	result, err := h.sys.Previous(r.Context(), who.UserID, id, threshold)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ResultResponse{Scan: result})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	who, id, threshold, ok := h.previousRequest(w, r)
	if !ok {
		return
	}

	file, err := h.sys.Export(r.Context(), who.UserID, id, threshold)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondText(w, http.StatusOK, file.Filename, file.Body)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	who, err := identity.FromRequest(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, err)
		return
	}

	id, err := documents.ParseID(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	records, err := h.sys.History(r.Context(), who.UserID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

func (h *Handler) previousRequest(w http.ResponseWriter, r *http.Request) (identity.Identity, int64, float64, bool) {
	who, err := identity.FromRequest(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, err)
		return identity.Identity{}, 0, 0, false
	}

	id, err := documents.ParseID(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return identity.Identity{}, 0, 0, false
	}

	threshold, err := ThresholdFromQuery(r.URL.Query(), h.cfg.DefaultThreshold)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return identity.Identity{}, 0, 0, false
	}

	return who, id, threshold, true
}

// ThresholdFromQuery reads the threshold parameter, falling back to def when absent.
func ThresholdFromQuery(values url.Values, def float64) (float64, error) {
	raw := values.Get("threshold")
	if raw == "" {
		return def, nil
	}

	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(t) || t < 0 || t > 100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThreshold, raw)
	}
	return t, nil
}
