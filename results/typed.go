package results

import (
	"net/http"
	"reflect"
)

// Ok writes 200 OK with no body.
type Ok struct{}

func (Ok) StatusCode() int { return http.StatusOK }

func (Ok) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusOK)
}

// OkOf writes 200 OK with Value encoded as JSON.
type OkOf[T any] struct {
	Value T
}

func (OkOf[T]) StatusCode() int { return http.StatusOK }

func (OkOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res OkOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, res.Value)
}

// CreatedOf writes 201 Created with an optional Location header and Value
// encoded as JSON.
type CreatedOf[T any] struct {
	Location string
	Value    T
}

func (CreatedOf[T]) StatusCode() int { return http.StatusCreated }

func (CreatedOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res CreatedOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	if res.Location != "" {
		w.Header().Set("Location", res.Location)
	}
	return writeJSON(w, http.StatusCreated, res.Value)
}

// Accepted writes 202 Accepted with an optional Location header and no body.
type Accepted struct {
	Location string
}

func (Accepted) StatusCode() int { return http.StatusAccepted }

func (res Accepted) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	if res.Location != "" {
		w.Header().Set("Location", res.Location)
	}
	return writeStatus(w, http.StatusAccepted)
}

// AcceptedOf writes 202 Accepted with an optional Location header and Value
// encoded as JSON.
type AcceptedOf[T any] struct {
	Location string
	Value    T
}

func (AcceptedOf[T]) StatusCode() int { return http.StatusAccepted }

func (AcceptedOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res AcceptedOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	if res.Location != "" {
		w.Header().Set("Location", res.Location)
	}
	return writeJSON(w, http.StatusAccepted, res.Value)
}

// NoContent writes 204 No Content.
type NoContent struct{}

func (NoContent) StatusCode() int { return http.StatusNoContent }

func (NoContent) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusNoContent)
}

// BadRequest writes 400 Bad Request with no body.
type BadRequest struct{}

func (BadRequest) StatusCode() int { return http.StatusBadRequest }

func (BadRequest) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusBadRequest)
}

// BadRequestOf writes 400 Bad Request with Value encoded as JSON.
type BadRequestOf[T any] struct {
	Value T
}

func (BadRequestOf[T]) StatusCode() int { return http.StatusBadRequest }

func (BadRequestOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res BadRequestOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusBadRequest, res.Value)
}

// Unauthorized writes 401 Unauthorized with no body.
type Unauthorized struct{}

func (Unauthorized) StatusCode() int { return http.StatusUnauthorized }

func (Unauthorized) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusUnauthorized)
}

// Forbidden writes 403 Forbidden with no body.
type Forbidden struct{}

func (Forbidden) StatusCode() int { return http.StatusForbidden }

func (Forbidden) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusForbidden)
}

// ForbiddenOf writes 403 Forbidden with Value encoded as JSON.
type ForbiddenOf[T any] struct {
	Value T
}

func (ForbiddenOf[T]) StatusCode() int { return http.StatusForbidden }

func (ForbiddenOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res ForbiddenOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusForbidden, res.Value)
}

// NotFound writes 404 Not Found with no body.
type NotFound struct{}

func (NotFound) StatusCode() int { return http.StatusNotFound }

func (NotFound) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusNotFound)
}

// NotFoundOf writes 404 Not Found with Value encoded as JSON.
type NotFoundOf[T any] struct {
	Value T
}

func (NotFoundOf[T]) StatusCode() int { return http.StatusNotFound }

func (NotFoundOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res NotFoundOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusNotFound, res.Value)
}

// Conflict writes 409 Conflict with no body.
type Conflict struct{}

func (Conflict) StatusCode() int { return http.StatusConflict }

func (Conflict) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusConflict)
}

// ConflictOf writes 409 Conflict with Value encoded as JSON.
type ConflictOf[T any] struct {
	Value T
}

func (ConflictOf[T]) StatusCode() int { return http.StatusConflict }

func (ConflictOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res ConflictOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusConflict, res.Value)
}

// UnprocessableEntity writes 422 Unprocessable Entity with no body.
type UnprocessableEntity struct{}

func (UnprocessableEntity) StatusCode() int { return http.StatusUnprocessableEntity }

func (UnprocessableEntity) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusUnprocessableEntity)
}

// UnprocessableEntityOf writes 422 Unprocessable Entity with Value encoded
// as JSON.
type UnprocessableEntityOf[T any] struct {
	Value T
}

func (UnprocessableEntityOf[T]) StatusCode() int { return http.StatusUnprocessableEntity }

func (UnprocessableEntityOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res UnprocessableEntityOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusUnprocessableEntity, res.Value)
}

// InternalServerError writes 500 Internal Server Error with no body.
type InternalServerError struct{}

func (InternalServerError) StatusCode() int { return http.StatusInternalServerError }

func (InternalServerError) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeStatus(w, http.StatusInternalServerError)
}

// InternalServerErrorOf writes 500 Internal Server Error with Value encoded
// as JSON.
type InternalServerErrorOf[T any] struct {
	Value T
}

func (InternalServerErrorOf[T]) StatusCode() int { return http.StatusInternalServerError }

func (InternalServerErrorOf[T]) PayloadType() reflect.Type { return reflect.TypeFor[T]() }

func (res InternalServerErrorOf[T]) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusInternalServerError, res.Value)
}

// Status writes an arbitrary status code chosen at runtime. Its zero value
// carries no status code, so documentation cannot infer one from the type.
type Status struct {
	Code int
}

func (res Status) StatusCode() int { return res.Code }

func (res Status) WriteResult(w http.ResponseWriter, _ *http.Request) error {
	code := res.Code
	if code == 0 {
		code = http.StatusOK
	}
	return writeStatus(w, code)
}

// Func adapts a plain function to a Result. It carries no status code and no
// payload type.
type Func func(w http.ResponseWriter, r *http.Request) error

func (f Func) WriteResult(w http.ResponseWriter, r *http.Request) error {
	if f == nil {
		return ErrEmptyResult
	}
	return f(w, r)
}

// Problem is an RFC 9457 problem details payload.
type Problem struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}
