package openapi

import (
	"net/http"
	"reflect"
	"slices"
	"strconv"
)

// operationMeta stores metadata collected via the fluent builder
// before the final spec is built.
type operationMeta struct {
	operationID  string
	summary      string
	description  string
	tags         []string
	deprecated   bool
	parameters   []*Parameter
	security     []SecurityRequirement
	externalDocs *ExternalDocs

	produces   []string     // operation-level content types for inferred responses
	returnType reflect.Type // explicit result type, overrides the handler's

	requestContents      map[string]any                // contentType -> body
	requestDescription   string                        // request body description
	responseContents     map[string]map[string]any     // statusKey -> contentType -> body
	responseDescriptions map[string]string             // statusKey -> custom description
	responseHeaders      map[string]map[string]*Header // statusKey -> headerName -> header
	responseLinks        map[string]map[string]*Link   // statusKey -> linkName -> link
}

// OperationBuilder provides a fluent API for attaching OpenAPI metadata
// to a route. It assembles an Operation Object.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type OperationBuilder struct {
	meta *operationMeta

	// groupProduces is copied from the RouteGroup that created the builder.
	groupProduces []string
}

func newOperationBuilder() *OperationBuilder {
	return &OperationBuilder{
		meta: &operationMeta{
			requestContents:  make(map[string]any),
			responseContents: make(map[string]map[string]any),
		},
	}
}

// OperationID sets a custom operation ID, overriding the route name.
func (b *OperationBuilder) OperationID(id string) *OperationBuilder {
	b.meta.operationID = id
	return b
}

// Summary sets the operation summary.
func (b *OperationBuilder) Summary(s string) *OperationBuilder {
	b.meta.summary = s
	return b
}

// Description sets the operation description.
func (b *OperationBuilder) Description(d string) *OperationBuilder {
	b.meta.description = d
	return b
}

// Tags adds one or more tags to the operation.
func (b *OperationBuilder) Tags(tags ...string) *OperationBuilder {
	b.meta.tags = append(b.meta.tags, tags...)
	return b
}

// Deprecated marks the operation as deprecated.
func (b *OperationBuilder) Deprecated() *OperationBuilder {
	b.meta.deprecated = true
	return b
}

// Produces sets the content types under which responses inferred from a
// typed result are documented. It takes precedence over group-level and
// endpoint-level declarations. Explicit Response/ResponseContent calls are
// not affected.
func (b *OperationBuilder) Produces(contentTypes ...string) *OperationBuilder {
	b.meta.produces = append(b.meta.produces, contentTypes...)
	return b
}

// Returns declares the handler's result type for routes whose handler does
// not expose it (anything other than results.Handle). v may be a
// reflect.Type, a handler function, or a result value:
//
//	spec.Route(r.HandleFunc("/users/{id}", getUser)).
//	    Returns(results.Results2[results.OkOf[User], results.NotFound]{})
func (b *OperationBuilder) Returns(v any) *OperationBuilder {
	switch t := v.(type) {
	case nil:
		b.meta.returnType = nil
	case reflect.Type:
		b.meta.returnType = t
	default:
		b.meta.returnType = reflect.TypeOf(v)
	}
	return b
}

// Request registers an application/json request body type for the operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
func (b *OperationBuilder) Request(body any) *OperationBuilder {
	b.meta.requestContents["application/json"] = body
	return b
}

// RequestContent registers a request body with the given content type.
// The body can be a Go value (schema generated via reflection), a *Schema,
// or nil for a content type with no schema.
func (b *OperationBuilder) RequestContent(contentType string, body any) *OperationBuilder {
	b.meta.requestContents[contentType] = body
	return b
}

// RequestDescription sets the description for the request body.
func (b *OperationBuilder) RequestDescription(desc string) *OperationBuilder {
	b.meta.requestDescription = desc
	return b
}

// Response registers an explicit application/json response for the given
// HTTP status code. Pass nil body for a response with no content; such a
// response only documents the status code and may still receive content
// inferred from a typed result.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
func (b *OperationBuilder) Response(statusCode int, body any) *OperationBuilder {
	key := strconv.Itoa(statusCode)
	if body == nil {
		if _, ok := b.meta.responseContents[key]; !ok {
			b.meta.responseContents[key] = nil
		}
		return b
	}
	return b.ResponseContent(statusCode, "application/json", body)
}

// ResponseContent registers an explicit response with the given status code
// and content type.
func (b *OperationBuilder) ResponseContent(statusCode int, contentType string, body any) *OperationBuilder {
	key := strconv.Itoa(statusCode)
	if b.meta.responseContents[key] == nil {
		b.meta.responseContents[key] = make(map[string]any)
	}
	b.meta.responseContents[key][contentType] = body
	return b
}

// ResponseDescription overrides the description of a response. Without it,
// explicit responses are described by their HTTP status text.
func (b *OperationBuilder) ResponseDescription(statusCode int, desc string) *OperationBuilder {
	key := strconv.Itoa(statusCode)
	if b.meta.responseDescriptions == nil {
		b.meta.responseDescriptions = make(map[string]string)
	}
	b.meta.responseDescriptions[key] = desc
	return b
}

// ResponseHeader adds a header to the response for the given status code.
func (b *OperationBuilder) ResponseHeader(statusCode int, name string, h *Header) *OperationBuilder {
	key := strconv.Itoa(statusCode)
	if b.meta.responseHeaders == nil {
		b.meta.responseHeaders = make(map[string]map[string]*Header)
	}
	if b.meta.responseHeaders[key] == nil {
		b.meta.responseHeaders[key] = make(map[string]*Header)
	}
	b.meta.responseHeaders[key][name] = h
	return b
}

// ResponseLink adds a design-time link to the response for the given status
// code. Links survive when a typed result later fills the response content.
//
// See: https://spec.openapis.org/oas/v3.1.0#link-object
func (b *OperationBuilder) ResponseLink(statusCode int, name string, l *Link) *OperationBuilder {
	key := strconv.Itoa(statusCode)
	if b.meta.responseLinks == nil {
		b.meta.responseLinks = make(map[string]map[string]*Link)
	}
	if b.meta.responseLinks[key] == nil {
		b.meta.responseLinks[key] = make(map[string]*Link)
	}
	b.meta.responseLinks[key][name] = l
	return b
}

// Parameter adds a custom parameter to the operation.
func (b *OperationBuilder) Parameter(param *Parameter) *OperationBuilder {
	b.meta.parameters = append(b.meta.parameters, param)
	return b
}

// Security sets operation-level security requirements. Call with no
// arguments to mark the operation as unauthenticated.
func (b *OperationBuilder) Security(reqs ...SecurityRequirement) *OperationBuilder {
	if reqs == nil {
		reqs = []SecurityRequirement{}
	}
	b.meta.security = reqs
	return b
}

// ExternalDocs sets external documentation for the operation.
func (b *OperationBuilder) ExternalDocs(url, description string) *OperationBuilder {
	b.meta.externalDocs = &ExternalDocs{URL: url, Description: description}
	return b
}

// descriptor assembles the OperationDescriptor for this operation. The
// handler supplies the return type (unless Returns was called) and the
// endpoint metadata.
func (b *OperationBuilder) descriptor(handler http.Handler) OperationDescriptor {
	d := OperationDescriptor{
		ReturnType:        b.meta.returnType,
		MethodProduces:    b.meta.produces,
		DeclaringProduces: b.groupProduces,
	}
	if d.ReturnType == nil {
		if rt, ok := handler.(resultTyper); ok {
			d.ReturnType = rt.ResultType()
		}
	}
	if mp, ok := handler.(endpointMetadataProvider); ok {
		d.EndpointMetadata = mp.EndpointMetadata()
	}
	return d
}

// mergeParameters combines auto-generated path parameters with custom
// parameters. Custom parameters with the same name+in replace auto ones.
func mergeParameters(auto, custom []*Parameter) []*Parameter {
	if len(auto) == 0 && len(custom) == 0 {
		return nil
	}

	overrides := make(map[[2]string]struct{}, len(custom))
	for _, p := range custom {
		overrides[[2]string{p.Name, p.In}] = struct{}{}
	}

	var merged []*Parameter
	for _, p := range auto {
		if _, ok := overrides[[2]string{p.Name, p.In}]; !ok {
			merged = append(merged, p)
		}
	}
	return append(merged, custom...)
}

// resolveSchema returns body itself when it is a *Schema and a generated
// schema otherwise.
func resolveSchema(gen *SchemaGenerator, body any) *Schema {
	if body == nil {
		return nil
	}
	if s, ok := body.(*Schema); ok {
		return s
	}
	return gen.Generate(body)
}

// responseDescription returns the HTTP status text for a response key.
func responseDescription(key string) string {
	if key == "default" {
		return "Default response"
	}
	if code, err := strconv.Atoi(key); err == nil {
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	return key
}

func buildContent(gen *SchemaGenerator, contents map[string]any) map[string]*MediaType {
	out := make(map[string]*MediaType, len(contents))
	for ct, body := range contents {
		out[ct] = &MediaType{Schema: resolveSchema(gen, body)}
	}
	return out
}

// buildOperation converts the explicit metadata into an Operation Object.
// Inferred responses are added later by operation filters.
func (b *OperationBuilder) buildOperation(gen *SchemaGenerator, operationID string, pathParams []*Parameter) *Operation {
	if b.meta.operationID != "" {
		operationID = b.meta.operationID
	}
	op := &Operation{
		OperationID:  operationID,
		Summary:      b.meta.summary,
		Description:  b.meta.description,
		Tags:         slices.Clone(b.meta.tags),
		Deprecated:   b.meta.deprecated,
		Security:     b.meta.security,
		ExternalDocs: b.meta.externalDocs,
		Parameters:   mergeParameters(pathParams, b.meta.parameters),
	}

	if len(b.meta.requestContents) > 0 {
		op.RequestBody = &RequestBody{
			Description: b.meta.requestDescription,
			Required:    true,
			Content:     buildContent(gen, b.meta.requestContents),
		}
	}

	if len(b.meta.responseContents) > 0 {
		op.Responses = make(map[string]*Response, len(b.meta.responseContents))
		for key, contents := range b.meta.responseContents {
			resp := &Response{Description: responseDescription(key)}
			if custom, ok := b.meta.responseDescriptions[key]; ok {
				resp.Description = custom
			}
			if len(contents) > 0 {
				resp.Content = buildContent(gen, contents)
			}
			if headers := b.meta.responseHeaders[key]; len(headers) > 0 {
				resp.Headers = headers
			}
			if links := b.meta.responseLinks[key]; len(links) > 0 {
				resp.Links = links
			}
			op.Responses[key] = resp
		}
	}

	return op
}
