package openapi

import (
	"maps"
	"strconv"

	"github.com/gorilla/mux"
)

// groupDefaults holds the metadata a RouteGroup applies to every
// OperationBuilder it creates.
type groupDefaults struct {
	tags        []string
	security    []SecurityRequirement
	securitySet bool // distinguishes nil (inherit) from empty (public)
	deprecated  bool
	parameters  []*Parameter
	produces    []string

	responseContents     map[string]map[string]any // statusKey -> contentType -> body
	responseDescriptions map[string]string         // statusKey -> custom description
}

// RouteGroup provides shared OpenAPI metadata for a logical group of
// operations, typically the handlers of one resource. Its Produces setting
// is the middle tier of content type resolution for inferred responses.
type RouteGroup struct {
	spec     *Spec
	defaults groupDefaults
}

// Tags appends tags inherited by every operation of the group.
func (g *RouteGroup) Tags(tags ...string) *RouteGroup {
	g.defaults.tags = append(g.defaults.tags, tags...)
	return g
}

// Security sets the group-level security requirements. Call with no
// arguments to mark the group as public.
func (g *RouteGroup) Security(reqs ...SecurityRequirement) *RouteGroup {
	if reqs == nil {
		reqs = []SecurityRequirement{}
	}
	g.defaults.security = reqs
	g.defaults.securitySet = true
	return g
}

// Deprecated marks all operations in this group as deprecated.
func (g *RouteGroup) Deprecated() *RouteGroup {
	g.defaults.deprecated = true
	return g
}

// Parameter adds a common parameter to the group defaults.
func (g *RouteGroup) Parameter(param *Parameter) *RouteGroup {
	g.defaults.parameters = append(g.defaults.parameters, param)
	return g
}

// Produces sets the content types for responses inferred from typed results
// of every operation in the group. OperationBuilder.Produces overrides it.
func (g *RouteGroup) Produces(contentTypes ...string) *RouteGroup {
	g.defaults.produces = append(g.defaults.produces, contentTypes...)
	return g
}

// Response adds a shared application/json response for the given status
// code. Pass nil body for a response without content.
func (g *RouteGroup) Response(statusCode int, body any) *RouteGroup {
	key := strconv.Itoa(statusCode)
	if g.defaults.responseContents == nil {
		g.defaults.responseContents = make(map[string]map[string]any)
	}
	if body != nil {
		if g.defaults.responseContents[key] == nil {
			g.defaults.responseContents[key] = make(map[string]any)
		}
		g.defaults.responseContents[key]["application/json"] = body
	} else if g.defaults.responseContents[key] == nil {
		g.defaults.responseContents[key] = nil
	}
	return g
}

// ResponseDescription sets a custom description for a shared group response.
func (g *RouteGroup) ResponseDescription(statusCode int, desc string) *RouteGroup {
	if g.defaults.responseDescriptions == nil {
		g.defaults.responseDescriptions = make(map[string]string)
	}
	g.defaults.responseDescriptions[strconv.Itoa(statusCode)] = desc
	return g
}

// Route attaches an OperationBuilder to an existing mux route, pre-populated
// with this group's defaults.
func (g *RouteGroup) Route(route *mux.Route) *OperationBuilder {
	b := g.newBuilderWithDefaults()
	g.spec.routeOps[route] = b
	return b
}

// Op returns an OperationBuilder for the named route, pre-populated with
// this group's defaults. An already registered builder is returned as is.
func (g *RouteGroup) Op(routeName string) *OperationBuilder {
	if b, ok := g.spec.operations[routeName]; ok {
		return b
	}
	b := g.newBuilderWithDefaults()
	g.spec.operations[routeName] = b
	return b
}

func (g *RouteGroup) newBuilderWithDefaults() *OperationBuilder {
	b := newOperationBuilder()

	b.meta.tags = append(b.meta.tags, g.defaults.tags...)
	b.meta.parameters = append(b.meta.parameters, g.defaults.parameters...)
	if g.defaults.securitySet {
		b.meta.security = g.defaults.security
	}
	b.meta.deprecated = g.defaults.deprecated
	if len(g.defaults.produces) > 0 {
		b.groupProduces = append([]string(nil), g.defaults.produces...)
	}

	for key, contents := range g.defaults.responseContents {
		if contents == nil {
			b.meta.responseContents[key] = nil
			continue
		}
		b.meta.responseContents[key] = maps.Clone(contents)
	}
	if len(g.defaults.responseDescriptions) > 0 {
		b.meta.responseDescriptions = maps.Clone(g.defaults.responseDescriptions)
	}

	return b
}
