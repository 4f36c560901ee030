// Package openapi builds OpenAPI v3.1.0 documents from gorilla/mux routes
// and documents responses inferred from typed handler results.
//
// Schemas are generated from Go types with reflection and struct tags and
// follow JSON Schema Draft 2020-12.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
//
// # Spec Builder
//
// Create a spec, attach metadata to routes, and build the document:
//
//	spec := openapi.NewSpec(openapi.Info{Title: "My API", Version: "1.0.0"})
//
//	r := mux.NewRouter()
//	spec.Route(r.HandleFunc("/users", createUser).Methods(http.MethodPost)).
//	    Summary("Create a user").
//	    Tags("users").
//	    Request(CreateUserInput{}).
//	    Response(http.StatusCreated, User{})
//
//	doc, err := spec.Build(r)
//
// Named routes can be annotated with Op instead:
//
//	r.HandleFunc("/users", listUsers).Methods(http.MethodGet).Name("listUsers")
//	spec.Op("listUsers").Summary("List all users")
//
// The route name becomes the operationId. AutoOperationIDs derives one from
// the method and path for unnamed routes ("GET /users/{id}" -> "getUsersId").
//
// # Typed Results
//
// Handlers registered through results.Handle expose their result type.
// UseTypedResults registers a filter that turns it into responses:
//
//	spec.UseTypedResults(&openapi.TypedResultConfig{Logger: logger})
//
//	r.Handle("/users/{id}", results.Handle(getUser)).Methods(http.MethodGet)
//
//	func getUser(r *http.Request) (results.Results2[results.OkOf[User], results.NotFound], error)
//
// documents 200 with a User schema and a bodiless 404. A single typed result
// such as results.CreatedOf[User] documents one response. Result types that
// are not typed results (results.Func, plain http.Handler) add nothing.
//
// For handlers that are not built with results.Handle, declare the type:
//
//	spec.Route(r.HandleFunc("/users/{id}", legacyGetUser)).
//	    Returns(results.OkOf[User]{})
//
// Inferred responses never replace a response that already has content:
//
//	spec.Route(r.Handle("/users/{id}", results.Handle(getUser))).
//	    ResponseContent(http.StatusOK, "application/xml", UserXML{})
//
// keeps the XML response for 200 and only fills in 404.
//
// # Content Types
//
// A response with a payload is documented under the first non-empty
// declaration of:
//
//  1. OperationBuilder.Produces
//  2. RouteGroup.Produces of the group that created the builder
//  3. results.WithProduces on the handler
//  4. DefaultContentTypes: application/json, text/json, text/plain
//
// Declared content types are validated with mime.ParseMediaType; an invalid
// one fails Build.
//
// # Operation Filters
//
// AddOperationFilter registers custom post-processing. Filters run once per
// operation in registration order, after explicit metadata is built:
//
//	spec.AddOperationFilter(openapi.OperationFilterFunc(
//	    func(op *openapi.Operation, ctx *openapi.OperationContext) error {
//	        op.Tags = append(op.Tags, strings.ToLower(ctx.Method))
//	        return nil
//	    }))
//
// # Route Groups
//
// Group applies shared defaults to the operations created through it.
// Groups do not affect routing:
//
//	users := spec.Group().
//	    Tags("users").
//	    Produces("application/json").
//	    Response(http.StatusForbidden, ErrorResponse{})
//
//	users.Route(r.Handle("/users", results.Handle(listUsers)).Methods(http.MethodGet))
//
// # Path Parameters
//
// Path variables become required path parameters. Common patterns map to
// typed schemas:
//
//	{id:[0-9]+}  -> integer
//	{id:\d+}     -> integer
//	{id}         -> string
//	{id:<uuid>}  -> string, format uuid
//
// Any other pattern is kept as the schema pattern.
//
// # Struct Tags
//
// Field names come from json tags. The openapi tag adds constraints:
//
//	type User struct {
//	    ID    uuid.UUID `json:"id" openapi:"description=User ID,readOnly"`
//	    Name  string    `json:"name" openapi:"minLength=1,maxLength=100"`
//	    Email string    `json:"email,omitempty" openapi:"format=email"`
//	    Role  string    `json:"role" openapi:"enum=admin|user|guest"`
//	}
//
// Fields without omitempty are required. Named struct types are placed in
// components/schemas and referenced with $ref. time.Time is a date-time
// string and uuid.UUID a uuid string.
//
// # Serving
//
// Handle serves the document as JSON and YAML together with an interactive
// UI:
//
//	spec.Handle(r, "/swagger", &openapi.HandleConfig{
//	    DisplayOperationID: true,
//	})
//
// DisplayOperationID shows operation IDs in Swagger UI. The document is built
// once on first request; a build error is logged and answered with 500.
package openapi
