package credits

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/handlers"
	"github.com/JaimeStill/docmatrix/pkg/openapi"
	"github.com/JaimeStill/docmatrix/pkg/routes"
)

// Handler exposes the requester's credit balance.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a credits handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "credits"),
	}
}

// Routes returns the credits endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/credits",
		Tags:        []string{"Credits"},
		Description: "Daily scan allowance",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Get, OpenAPI: Spec.Get},
		},
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	who, err := identity.FromRequest(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, err)
		return
	}

	usage, err := h.sys.Usage(r.Context(), who.UserID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	usage.Unlimited = who.IsAdmin()

	handlers.RespondJSON(w, http.StatusOK, usage)
}

type spec struct {
	Get *openapi.Operation
}

var Spec = spec{
	Get: &openapi.Operation{
		Summary:     "Credit balance",
		Description: "Credits used today and the remaining daily allowance. Admin scans are not charged.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Credit usage", "CreditUsage"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"CreditUsage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"user_id":      {Type: "string", Format: "uuid"},
				"daily_limit":  {Type: "integer"},
				"credits_used": {Type: "integer"},
				"remaining":    {Type: "integer"},
				"usage_date":   {Type: "string", Format: "date"},
				"unlimited":    {Type: "boolean"},
			},
		},
	}
}
