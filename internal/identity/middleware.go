package identity

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/docmatrix/pkg/handlers"
)

// Middleware rejects requests without a valid identity with 401 and stores
// the parsed identity in the request context. Paths in exempt pass through untouched.
func Middleware(logger *slog.Logger, exempt ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			id, err := Parse(r.Header.Get(HeaderUserID), r.Header.Get(HeaderRole))
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// FromRequest returns the identity stored on r, or ErrMissingIdentity when the
// request did not pass through Middleware.
func FromRequest(r *http.Request) (Identity, error) {
	id, ok := FromContext(r.Context())
	if !ok {
		return Identity{}, ErrMissingIdentity
	}
	return id, nil
}
