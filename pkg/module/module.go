// Package module mounts self-contained HTTP handlers under single-segment
// path prefixes. Each module owns its middleware chain and sees request
// paths with its prefix removed.
package module

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Module is an http.Handler mounted under a prefix such as "/api".
type Module struct {
	prefix      string
	handler     http.Handler
	middlewares []Middleware

	once  sync.Once
	chain http.Handler
}

// New creates a Module. It panics when prefix is empty, lacks a leading
// slash, or spans more than one path segment.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, handler: handler}
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if strings.Contains(prefix[1:], "/") || len(prefix) == 1 {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first registered middleware runs outermost.
// Middleware added after the module has served a request is ignored.
func (m *Module) Use(mw Middleware) {
	m.middlewares = append(m.middlewares, mw)
}

// Handler returns the module handler wrapped in its middleware chain.
// The chain is built on first use and reused afterwards.
func (m *Module) Handler() http.Handler {
	m.once.Do(func() {
		h := m.handler
		for i := len(m.middlewares) - 1; i >= 0; i-- {
			h = m.middlewares[i](h)
		}
		m.chain = h
	})
	return m.chain
}

// Serve strips the module prefix and dispatches to Handler.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := r.Clone(r.Context())
	req.URL.Path = path
	req.URL.RawPath = ""

	m.Handler().ServeHTTP(w, req)
}
