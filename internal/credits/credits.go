// Package credits meters scans with a daily per-user allowance.
package credits

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/identity"
)

// ErrInsufficientCredits is returned when the daily allowance is spent.
var ErrInsufficientCredits = errors.New("not enough credits")

// Usage is a user's credit balance for the current day.
type Usage struct {
	UserID      uuid.UUID `json:"user_id"`
	DailyLimit  int       `json:"daily_limit"`
	CreditsUsed int       `json:"credits_used"`
	Remaining   int       `json:"remaining"`
	UsageDate   time.Time `json:"usage_date"`
	Unlimited   bool      `json:"unlimited,omitempty"`
}

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientCredits):
		return http.StatusForbidden
	case errors.Is(err, identity.ErrMissingIdentity):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
