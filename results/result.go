package results

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
)

// ErrEmptyResult is returned when a union result is written without a value.
var ErrEmptyResult = errors.New("results: union result has no value")

// Result is an HTTP outcome that knows how to write itself.
type Result interface {
	WriteResult(w http.ResponseWriter, r *http.Request) error
}

// StatusCoder is implemented by results that carry their own HTTP status
// code. Typed results return a constant, so the zero value already reports
// the status code that would be written.
type StatusCoder interface {
	StatusCode() int
}

// PayloadTyper is implemented by results with a response body of a known
// static type.
type PayloadTyper interface {
	PayloadType() reflect.Type
}

// Union is implemented by results that stand for one of several typed
// results. ResultTypes returns the member types in declaration order.
type Union interface {
	ResultTypes() []reflect.Type
}

func writeStatus(w http.ResponseWriter, code int) error {
	w.WriteHeader(code)
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(data)
	return err
}
