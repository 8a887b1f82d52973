package documents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/decode"
)

// Domain errors for document operations.
var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicate    = errors.New("document storage key already exists")
	ErrForbidden    = errors.New("access to document denied")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("file must be non-empty UTF-8 text")
	ErrInvalidScope = errors.New("scope must be own or accessible")
	ErrInvalidID    = errors.New("document id must be a positive integer")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile),
		errors.Is(err, ErrInvalidScope),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, decode.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrMissingIdentity):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
