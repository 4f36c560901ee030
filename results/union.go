package results

import (
	"net/http"
	"reflect"
)

// The ResultsN types hold exactly one of N typed results. The member types
// are part of the static type, so documentation can enumerate every outcome
// of a handler without running it:
//
//	type getUserResult = results.Results3[results.OkOf[User], results.BadRequestOf[results.Problem], results.NotFound]
//
//	func getUser(r *http.Request) (getUserResult, error) {
//	    return getUserResult{Result: results.NotFound{}}, nil
//	}

func writeUnion(res Result, w http.ResponseWriter, r *http.Request) error {
	if res == nil {
		return ErrEmptyResult
	}
	return res.WriteResult(w, r)
}

// Results2 holds one of 2 typed results.
type Results2[A, B Result] struct {
	Result Result
}

func (Results2[A, B]) ResultTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

func (res Results2[A, B]) WriteResult(w http.ResponseWriter, r *http.Request) error {
	return writeUnion(res.Result, w, r)
}

// Results3 holds one of 3 typed results.
type Results3[A, B, C Result] struct {
	Result Result
}

func (Results3[A, B, C]) ResultTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

func (res Results3[A, B, C]) WriteResult(w http.ResponseWriter, r *http.Request) error {
	return writeUnion(res.Result, w, r)
}

// Results4 holds one of 4 typed results.
type Results4[A, B, C, D Result] struct {
	Result Result
}

func (Results4[A, B, C, D]) ResultTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
}

func (res Results4[A, B, C, D]) WriteResult(w http.ResponseWriter, r *http.Request) error {
	return writeUnion(res.Result, w, r)
}

// Results5 holds one of 5 typed results.
type Results5[A, B, C, D, E Result] struct {
	Result Result
}

func (Results5[A, B, C, D, E]) ResultTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](), reflect.TypeFor[E]()}
}

func (res Results5[A, B, C, D, E]) WriteResult(w http.ResponseWriter, r *http.Request) error {
	return writeUnion(res.Result, w, r)
}

// Results6 holds one of 6 typed results.
type Results6[A, B, C, D, E, F Result] struct {
	Result Result
}

func (Results6[A, B, C, D, E, F]) ResultTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](), reflect.TypeFor[E](), reflect.TypeFor[F]()}
}

func (res Results6[A, B, C, D, E, F]) WriteResult(w http.ResponseWriter, r *http.Request) error {
	return writeUnion(res.Result, w, r)
}
