package openapi

import (
	"log/slog"
	"reflect"
)

// OperationDescriptor describes the handler behind a documented operation:
// its declared return type and the content types declared at each scope.
type OperationDescriptor struct {
	// ReturnType is the handler's declared result type. It may be a func or
	// channel type wrapping the result; nil when unknown.
	ReturnType reflect.Type

	// MethodProduces are content types declared on the operation itself
	// (OperationBuilder.Produces).
	MethodProduces []string

	// DeclaringProduces are content types declared on the group the
	// operation was created through (RouteGroup.Produces).
	DeclaringProduces []string

	// EndpointMetadata is the metadata attached to the route handler, such
	// as results.Produces.
	EndpointMetadata []any
}

// OperationContext is passed to every OperationFilter.
type OperationContext struct {
	Method     string
	Path       string
	Descriptor OperationDescriptor

	// Schemas is the schema generator of the current build. Schemas
	// generated through it end up in components/schemas.
	Schemas *SchemaGenerator

	Logger *slog.Logger
}

// OperationFilter post-processes an operation after its explicit metadata
// has been built. Filters run once per documented operation, in registration
// order. A returned error aborts Spec.Build.
type OperationFilter interface {
	Apply(op *Operation, ctx *OperationContext) error
}

// OperationFilterFunc adapts a function to OperationFilter.
type OperationFilterFunc func(op *Operation, ctx *OperationContext) error

func (f OperationFilterFunc) Apply(op *Operation, ctx *OperationContext) error {
	return f(op, ctx)
}

type resultTyper interface {
	ResultType() reflect.Type
}

type endpointMetadataProvider interface {
	EndpointMetadata() []any
}
