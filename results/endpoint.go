package results

import (
	"io"
	"log/slog"
	"net/http"
	"reflect"
)

// Produces is endpoint metadata listing the content types an endpoint
// writes. Documentation generators use it when the operation itself does not
// declare content types.
type Produces struct {
	ContentTypes []string
}

// EndpointOption configures an Endpoint.
type EndpointOption func(*endpointConfig)

type endpointConfig struct {
	metadata []any
	logger   *slog.Logger
}

// WithProduces attaches Produces metadata to the endpoint.
func WithProduces(contentTypes ...string) EndpointOption {
	return func(cfg *endpointConfig) {
		cfg.metadata = append(cfg.metadata, Produces{ContentTypes: contentTypes})
	}
}

// WithMetadata attaches arbitrary metadata to the endpoint.
func WithMetadata(items ...any) EndpointOption {
	return func(cfg *endpointConfig) {
		cfg.metadata = append(cfg.metadata, items...)
	}
}

// WithLogger sets the logger used to report handler and write errors.
func WithLogger(logger *slog.Logger) EndpointOption {
	return func(cfg *endpointConfig) {
		cfg.logger = logger
	}
}

// Endpoint adapts a typed handler function to http.Handler while keeping
// its static result type visible to documentation generators.
type Endpoint[R Result] struct {
	fn       func(r *http.Request) (R, error)
	metadata []any
	logger   *slog.Logger
}

// Handle wraps fn as an http.Handler. A non-nil error from fn, or from
// writing the result before any status was sent, is logged and answered
// with 500. A nil result, including a typed nil pointer, is answered with
// 500 as well.
//
//	r.Handle("/users/{id}", results.Handle(getUser)).Methods(http.MethodGet)
func Handle[R Result](fn func(r *http.Request) (R, error), opts ...EndpointOption) *Endpoint[R] {
	cfg := &endpointConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Endpoint[R]{
		fn:       fn,
		metadata: cfg.metadata,
		logger:   cfg.logger,
	}
}

// ResultType returns the type of the wrapped handler function. The result
// type is its first return value.
func (e *Endpoint[R]) ResultType() reflect.Type {
	return reflect.TypeOf(e.fn)
}

// EndpointMetadata returns the metadata attached with WithProduces and
// WithMetadata, in the order the options were given.
func (e *Endpoint[R]) EndpointMetadata() []any {
	return e.metadata
}

func (e *Endpoint[R]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := e.fn(r)
	if err != nil {
		e.logger.Error("handler failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var written Result = res
	if isNilResult(written) {
		written = Func(nil)
	}

	tw := &trackingResponseWriter{ResponseWriter: w}
	if err := written.WriteResult(tw, r); err != nil {
		e.logger.Error("failed to write result", "method", r.Method, "path", r.URL.Path, "error", err)
		if !tw.wroteHeader {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// isNilResult reports whether res is nil or holds a nil pointer, map, slice,
// func, channel or interface.
func isNilResult(res Result) bool {
	if res == nil {
		return true
	}
	v := reflect.ValueOf(res)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// trackingResponseWriter records whether the status line has been sent, so
// a failed write can still be answered with 500.
type trackingResponseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (tw *trackingResponseWriter) WriteHeader(statusCode int) {
	tw.wroteHeader = true
	tw.ResponseWriter.WriteHeader(statusCode)
}

func (tw *trackingResponseWriter) Write(b []byte) (int, error) {
	tw.wroteHeader = true
	return tw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (tw *trackingResponseWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}
