package openapi

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"unicode"

	"github.com/gorilla/mux"
	"github.com/iancoleman/strcase"
)

// patternTypeMap maps common gorilla/mux variable patterns to OpenAPI
// type and format. Other patterns are documented as strings with the
// pattern attached.
var patternTypeMap = map[string][2]string{
	`[0-9]+`:    {"integer", ""},
	`\d+`:       {"integer", ""},
	`-?[0-9]+`:  {"integer", ""},
	uuidPattern: {"string", "uuid"},
}

const uuidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// Spec collects OpenAPI metadata for routes and builds a complete Document.
type Spec struct {
	info       Info
	servers    []Server
	operations map[string]*OperationBuilder     // keyed by route name (Op)
	routeOps   map[*mux.Route]*OperationBuilder // keyed by route pointer (Route)

	externalDocs    *ExternalDocs
	security        []SecurityRequirement
	tags            []Tag
	securitySchemes map[string]*SecurityScheme

	filters          []OperationFilter
	autoOperationIDs bool
	logger           *slog.Logger
}

// NewSpec creates a new spec builder with the given API info.
func NewSpec(info Info) *Spec {
	return &Spec{
		info:       info,
		operations: make(map[string]*OperationBuilder),
		routeOps:   make(map[*mux.Route]*OperationBuilder),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// AddServer adds a server to the document.
func (s *Spec) AddServer(server Server) *Spec {
	s.servers = append(s.servers, server)
	return s
}

// SetExternalDocs sets the document-level external documentation link.
func (s *Spec) SetExternalDocs(url, description string) *Spec {
	s.externalDocs = &ExternalDocs{URL: url, Description: description}
	return s
}

// SetSecurity sets the document-level security requirements.
func (s *Spec) SetSecurity(reqs ...SecurityRequirement) *Spec {
	s.security = reqs
	return s
}

// AddTag adds a user-defined tag with optional description and external docs.
func (s *Spec) AddTag(tag Tag) *Spec {
	s.tags = append(s.tags, tag)
	return s
}

// AddSecurityScheme registers a reusable security scheme in components.
func (s *Spec) AddSecurityScheme(name string, scheme *SecurityScheme) *Spec {
	if s.securitySchemes == nil {
		s.securitySchemes = make(map[string]*SecurityScheme)
	}
	s.securitySchemes[name] = scheme
	return s
}

// SetLogger sets the logger handed to operation filters. A nil logger
// discards output.
func (s *Spec) SetLogger(logger *slog.Logger) *Spec {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = logger
	return s
}

// AddOperationFilter registers a filter that runs on every operation during
// Build, after the operation's explicit metadata is assembled.
func (s *Spec) AddOperationFilter(f OperationFilter) *Spec {
	s.filters = append(s.filters, f)
	return s
}

// UseTypedResults registers a TypedResultFilter, documenting responses
// inferred from the handlers' typed results. cfg may be nil.
func (s *Spec) UseTypedResults(cfg *TypedResultConfig) *Spec {
	return s.AddOperationFilter(NewTypedResultFilter(cfg))
}

// AutoOperationIDs derives an operation ID from the method and path for
// operations that have neither a route name nor an explicit OperationID,
// e.g. "GET /users/{id}" becomes "getUsersId".
func (s *Spec) AutoOperationIDs() *Spec {
	s.autoOperationIDs = true
	return s
}

// Group creates a new RouteGroup for applying shared OpenAPI metadata
// defaults to a logical group of operations.
func (s *Spec) Group() *RouteGroup {
	return &RouteGroup{spec: s}
}

// Op returns an OperationBuilder for the named route.
// If the route name was not previously registered, a new builder is created.
func (s *Spec) Op(routeName string) *OperationBuilder {
	if b, ok := s.operations[routeName]; ok {
		return b
	}
	b := newOperationBuilder()
	s.operations[routeName] = b
	return b
}

// Route attaches an OperationBuilder to an existing mux route.
func (s *Spec) Route(route *mux.Route) *OperationBuilder {
	b := newOperationBuilder()
	s.routeOps[route] = b
	return b
}

// Build walks the router and assembles a complete OpenAPI Document. Only
// routes with a path template, methods and registered metadata are
// documented. Operation filters run once per operation; the first filter
// error aborts the build.
func (s *Spec) Build(r *mux.Router) (*Document, error) {
	gen := NewSchemaGenerator()
	doc := &Document{
		OpenAPI:      "3.1.0",
		Info:         s.info,
		Servers:      s.servers,
		Paths:        make(map[string]*PathItem),
		ExternalDocs: s.externalDocs,
		Security:     s.security,
	}

	err := r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}

		builder, ok := s.routeOps[route]
		if !ok {
			builder, ok = s.operations[route.GetName()]
			if !ok {
				return nil
			}
		}

		openAPIPath, pathParams := parsePath(pathTpl)

		pathItem, ok := doc.Paths[openAPIPath]
		if !ok {
			pathItem = &PathItem{}
			doc.Paths[openAPIPath] = pathItem
		}

		descriptor := builder.descriptor(route.GetHandler())

		for _, method := range methods {
			op := builder.buildOperation(gen, s.operationID(route.GetName(), method, openAPIPath), pathParams)

			ctx := &OperationContext{
				Method:     method,
				Path:       openAPIPath,
				Descriptor: descriptor,
				Schemas:    gen,
				Logger:     s.logger,
			}
			for _, f := range s.filters {
				if err := f.Apply(op, ctx); err != nil {
					return fmt.Errorf("%s %s: %w", method, openAPIPath, err)
				}
			}

			assignOperation(pathItem, method, op)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Components = s.buildComponents(gen)
	doc.Tags = s.mergeTags(doc.Paths)

	return doc, nil
}

// operationID returns the route name, or a generated ID when
// AutoOperationIDs is enabled. An explicit OperationID on the builder still
// takes precedence in buildOperation.
func (s *Spec) operationID(routeName, method, path string) string {
	if routeName != "" || !s.autoOperationIDs {
		return routeName
	}
	words := strings.FieldsFunc(path, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strcase.ToLowerCamel(strings.ToLower(method) + " " + strings.Join(words, " "))
}

func (s *Spec) buildComponents(gen *SchemaGenerator) *Components {
	schemas := gen.Schemas()
	if len(schemas) == 0 && len(s.securitySchemes) == 0 {
		return nil
	}

	comp := &Components{}
	if len(schemas) > 0 {
		comp.Schemas = schemas
	}
	if len(s.securitySchemes) > 0 {
		comp.SecuritySchemes = s.securitySchemes
	}
	return comp
}

// mergeTags combines tags used by operations with user-defined tags.
// User-defined tags keep their description and external docs. The result
// is sorted by name.
func (s *Spec) mergeTags(paths map[string]*PathItem) []Tag {
	userTags := make(map[string]Tag, len(s.tags))
	for _, tag := range s.tags {
		userTags[tag.Name] = tag
	}

	seen := make(map[string]bool)
	var tags []Tag

	for _, pathItem := range paths {
		for _, op := range pathOperations(pathItem) {
			for _, name := range op.Tags {
				if seen[name] {
					continue
				}
				seen[name] = true
				if userTag, ok := userTags[name]; ok {
					tags = append(tags, userTag)
				} else {
					tags = append(tags, Tag{Name: name})
				}
			}
		}
	}

	for _, tag := range s.tags {
		if !seen[tag.Name] {
			seen[tag.Name] = true
			tags = append(tags, tag)
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	return tags
}

// pathOperations returns the non-nil operations of a path item.
func pathOperations(pathItem *PathItem) []*Operation {
	var ops []*Operation
	for _, op := range []*Operation{
		pathItem.Get, pathItem.Post, pathItem.Put,
		pathItem.Delete, pathItem.Patch, pathItem.Head,
		pathItem.Options, pathItem.Trace,
	} {
		if op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

// assignOperation assigns an operation to the HTTP method field of the
// path item.
func assignOperation(pathItem *PathItem, method string, op *Operation) {
	switch method {
	case http.MethodGet:
		pathItem.Get = op
	case http.MethodPost:
		pathItem.Post = op
	case http.MethodPut:
		pathItem.Put = op
	case http.MethodDelete:
		pathItem.Delete = op
	case http.MethodPatch:
		pathItem.Patch = op
	case http.MethodHead:
		pathItem.Head = op
	case http.MethodOptions:
		pathItem.Options = op
	case http.MethodTrace:
		pathItem.Trace = op
	}
}

// parsePath converts a gorilla/mux path template ("/users/{id:[0-9]+}") to
// an OpenAPI path ("/users/{id}") plus path parameters. Variable patterns
// may contain balanced braces.
func parsePath(tpl string) (string, []*Parameter) {
	var (
		out    strings.Builder
		params []*Parameter
	)

	for i := 0; i < len(tpl); i++ {
		if tpl[i] != '{' {
			out.WriteByte(tpl[i])
			continue
		}

		depth, end := 0, -1
		for j := i; j < len(tpl); j++ {
			switch tpl[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				end = j
				break
			}
		}
		if end < 0 {
			out.WriteString(tpl[i:])
			break
		}

		name, pattern, _ := strings.Cut(tpl[i+1:end], ":")
		params = append(params, pathParameter(name, pattern))
		out.WriteString("{" + name + "}")
		i = end
	}

	return out.String(), params
}

func pathParameter(name, pattern string) *Parameter {
	schema := &Schema{Type: TypeString("string")}
	if typeInfo, ok := patternTypeMap[pattern]; ok {
		schema.Type = TypeString(typeInfo[0])
		schema.Format = typeInfo[1]
	} else if pattern != "" {
		schema.Pattern = "^" + pattern + "$"
	}
	return &Parameter{
		Name:     name,
		In:       "path",
		Required: true,
		Schema:   schema,
	}
}
