// Package routes describes HTTP endpoints as groups that register on a mux
// and contribute their operations to an OpenAPI document.
package routes

import (
	"net/http"

	"github.com/JaimeStill/docmatrix/pkg/openapi"
)

// Route is a single endpoint. Pattern is relative to the owning group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group collects routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec adds the group's operations and schemas to spec.
// basePath is prepended to documented paths only.
// Routes without OpenAPI metadata are left undocumented.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addOperations(basePath, spec)
	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}
	for i := range g.Children {
		child := g.Children[i]
		child.Prefix = g.Prefix + child.Prefix
		if len(child.Tags) == 0 {
			child.Tags = g.Tags
		}
		child.AddToSpec(basePath, spec)
	}
}

func (g *Group) addOperations(basePath string, spec *openapi.Spec) {
	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}
		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}
		spec.AddOperation(basePath+g.Prefix+route.Pattern, route.Method, op)
	}
}

// Register mounts each group on mux and documents it under basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		group.AddToSpec(basePath, spec)
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
