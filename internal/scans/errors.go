package scans

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/docmatrix/internal/credits"
	"github.com/JaimeStill/docmatrix/internal/documents"
	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/decode"
)

// Domain errors for scan operations.
var (
	ErrNotFound         = errors.New("source document not found")
	ErrAccessDenied     = errors.New("access denied to source document")
	ErrInvalidThreshold = errors.New("similarity threshold must be a number between 0 and 100")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAccessDenied),
		errors.Is(err, credits.ErrInsufficientCredits):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidThreshold),
		errors.Is(err, documents.ErrInvalidID),
		errors.Is(err, decode.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrMissingIdentity):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
