package openapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"reflect"
	"strconv"

	"github.com/vitalvas/typedresults/results"
)

var (
	// ErrNoStatusCode marks a result type that does not implement
	// results.StatusCoder.
	ErrNoStatusCode = errors.New("result type has no status code")

	// ErrZeroStatusCode marks a result type whose zero value reports
	// status code 0, i.e. the code is only known at runtime.
	ErrZeroStatusCode = errors.New("result type reports status code 0")

	// ErrInvalidStatusCode is returned when a result type reports a status
	// code outside 100..599.
	ErrInvalidStatusCode = errors.New("invalid status code")
)

// ShapeKind classifies a handler's result type.
type ShapeKind int

const (
	// ShapeNotRecognized is a type that is not a documentable typed result.
	ShapeNotRecognized ShapeKind = iota
	// ShapeSingle is one typed result, such as results.OkOf[User].
	ShapeSingle
	// ShapeSet is a union of typed results, such as results.Results3.
	ShapeSet
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSingle:
		return "single"
	case ShapeSet:
		return "set"
	default:
		return "not-recognized"
	}
}

// ResultShape is the classification of a result type.
type ResultShape struct {
	Kind ShapeKind

	// Inner is the payload type of a single result; nil when it has no body.
	Inner reflect.Type

	// Members are the result types to extract metadata from: the single
	// result itself, or every union member in declaration order.
	Members []reflect.Type
}

// ResponseMetadata is one documentable outcome of an operation.
type ResponseMetadata struct {
	StatusCode  int
	PayloadType reflect.Type
}

// SkippedResult is a union member or single result whose metadata could not
// be inferred.
type SkippedResult struct {
	Type   reflect.Type
	Reason error
}

// InferenceOutcome summarizes an Inference.
type InferenceOutcome int

const (
	InferenceNotRecognized InferenceOutcome = iota
	InferencePartial
	InferenceComplete
)

func (o InferenceOutcome) String() string {
	switch o {
	case InferencePartial:
		return "partial"
	case InferenceComplete:
		return "complete"
	default:
		return "not-recognized"
	}
}

// Inference is the result of inferring responses from a result type.
type Inference struct {
	Shape     ResultShape
	Responses []ResponseMetadata
	Skipped   []SkippedResult
}

// Outcome reports whether every member produced metadata.
func (inf Inference) Outcome() InferenceOutcome {
	switch {
	case inf.Shape.Kind == ShapeNotRecognized:
		return InferenceNotRecognized
	case len(inf.Skipped) > 0:
		return InferencePartial
	default:
		return InferenceComplete
	}
}

// unwrapResultType strips deferred wrappers: a func yields its first result,
// a channel its element type, a pointer its element type. A func type that
// is itself a result, such as results.Func, is not unwrapped.
func unwrapResultType(t reflect.Type) reflect.Type {
	for t != nil {
		if _, ok := zeroValue(t).(results.Result); ok {
			return t
		}
		switch t.Kind() {
		case reflect.Func:
			if t.NumOut() == 0 {
				return nil
			}
			t = t.Out(0)
		case reflect.Chan:
			t = t.Elem()
		case reflect.Pointer:
			return t.Elem()
		default:
			return t
		}
	}
	return nil
}

// zeroValue returns a pointer to a zero value of t, whose method set covers
// both value and pointer receivers. Typed results return constants from
// their value methods, so no handler runs and no payload is needed.
func zeroValue(t reflect.Type) any {
	return reflect.New(t).Interface()
}

// ClassifyResult classifies a handler's declared result type.
func ClassifyResult(t reflect.Type) ResultShape {
	t = unwrapResultType(t)
	if t == nil {
		return ResultShape{Kind: ShapeNotRecognized}
	}

	v := zeroValue(t)
	if _, ok := v.(results.Result); !ok {
		return ResultShape{Kind: ShapeNotRecognized}
	}

	if u, ok := v.(results.Union); ok {
		return ResultShape{Kind: ShapeSet, Members: u.ResultTypes()}
	}
	if p, ok := v.(results.PayloadTyper); ok {
		return ResultShape{Kind: ShapeSingle, Inner: p.PayloadType(), Members: []reflect.Type{t}}
	}
	if _, ok := v.(results.StatusCoder); ok {
		return ResultShape{Kind: ShapeSingle, Members: []reflect.Type{t}}
	}

	// A raw result such as results.Func: the status code is only known
	// once it runs.
	return ResultShape{Kind: ShapeNotRecognized}
}

// ExtractResponse reads the status code and payload type of a single typed
// result type from its zero value.
func ExtractResponse(t reflect.Type) (ResponseMetadata, error) {
	if t == nil {
		return ResponseMetadata{}, ErrNoStatusCode
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	v := zeroValue(t)

	sc, ok := v.(results.StatusCoder)
	if !ok {
		return ResponseMetadata{}, ErrNoStatusCode
	}

	code := sc.StatusCode()
	if code == 0 {
		return ResponseMetadata{}, ErrZeroStatusCode
	}

	meta := ResponseMetadata{StatusCode: code}
	if p, ok := v.(results.PayloadTyper); ok {
		meta.PayloadType = p.PayloadType()
	}
	return meta, nil
}

// InferResponses classifies t and extracts metadata from every member.
// Members that cannot be extracted are recorded in Skipped.
func InferResponses(t reflect.Type) Inference {
	inf := Inference{Shape: ClassifyResult(t)}
	for _, member := range inf.Shape.Members {
		meta, err := ExtractResponse(member)
		if err != nil {
			inf.Skipped = append(inf.Skipped, SkippedResult{Type: member, Reason: err})
			continue
		}
		inf.Responses = append(inf.Responses, meta)
	}
	return inf
}

// TypedResultConfig configures the typed result filter.
type TypedResultConfig struct {
	// Logger receives a warning for every result type whose metadata could
	// not be inferred. Default: discard.
	Logger *slog.Logger
}

// TypedResultFilter documents responses inferred from the handler's typed
// result. Responses that already have content are never touched, so
// explicit Response/ResponseContent declarations always win.
type TypedResultFilter struct {
	logger *slog.Logger
}

// NewTypedResultFilter creates a typed result filter. cfg may be nil.
func NewTypedResultFilter(cfg *TypedResultConfig) *TypedResultFilter {
	f := &TypedResultFilter{}
	if cfg != nil {
		f.logger = cfg.Logger
	}
	return f
}

// Apply merges the responses inferred from ctx.Descriptor.ReturnType into
// op.Responses. A content-less entry that receives a payload keeps its
// description, headers and links; new entries are described by their status
// code.
func (f *TypedResultFilter) Apply(op *Operation, ctx *OperationContext) error {
	inf := InferResponses(ctx.Descriptor.ReturnType)

	logger := f.logger
	if logger == nil {
		logger = ctx.Logger
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, s := range inf.Skipped {
		logger.Warn("cannot infer response from result type",
			"method", ctx.Method,
			"path", ctx.Path,
			"type", s.Type,
			"reason", s.Reason)
	}

	if len(inf.Responses) == 0 {
		return nil
	}

	var contentTypes []string
	for _, meta := range inf.Responses {
		if meta.StatusCode < 100 || meta.StatusCode > 599 {
			return fmt.Errorf("%w %d", ErrInvalidStatusCode, meta.StatusCode)
		}

		key := strconv.Itoa(meta.StatusCode)
		existing, ok := op.Responses[key]
		if ok && existing != nil && (len(existing.Content) > 0 || meta.PayloadType == nil) {
			continue
		}

		resp := &Response{}
		if existing != nil {
			resp.Description = existing.Description
			resp.Headers = maps.Clone(existing.Headers)
			resp.Links = maps.Clone(existing.Links)
		}

		if meta.PayloadType != nil {
			if contentTypes == nil {
				contentTypes = ResolveContentTypes(ctx.Descriptor)
				if err := validateContentTypes(contentTypes); err != nil {
					return err
				}
			}

			if ctx.Schemas == nil {
				ctx.Schemas = NewSchemaGenerator()
			}
			schema := ctx.Schemas.GenerateType(meta.PayloadType)
			resp.Content = make(map[string]*MediaType, len(contentTypes))
			for _, ct := range contentTypes {
				resp.Content[ct] = &MediaType{Schema: schema}
			}
		}

		if resp.Description == "" {
			resp.Description = key
		}

		if op.Responses == nil {
			op.Responses = make(map[string]*Response)
		}
		op.Responses[key] = resp
	}

	return nil
}
