// Package results provides statically typed HTTP results for net/http
// handlers.
//
// A typed result pairs an HTTP status code with an optional payload type:
//
//	results.OkOf[User]{Value: u}          // 200 with a JSON body
//	results.NotFound{}                    // 404 with no body
//	results.CreatedOf[User]{Location: "/users/1", Value: u}
//
// Handlers that can end in several ways return a ResultsN union whose type
// parameters list every possible outcome:
//
//	type getUserResult = results.Results3[
//	    results.OkOf[User],
//	    results.BadRequestOf[results.Problem],
//	    results.NotFound,
//	]
//
//	func getUser(r *http.Request) (getUserResult, error) {
//	    id := mux.Vars(r)["id"]
//	    if id == "" {
//	        return getUserResult{Result: results.BadRequestOf[results.Problem]{
//	            Value: results.Problem{Title: "missing id"},
//	        }}, nil
//	    }
//	    ...
//	}
//
//	r.Handle("/users/{id}", results.Handle(getUser)).Methods(http.MethodGet)
//
// Because the outcomes are part of the handler's type, the openapi package
// can document every status code and response schema without annotations.
//
// # Capabilities
//
// Every result implements Result. Results with a fixed status code implement
// StatusCoder on their value receiver, results with a body implement
// PayloadTyper, and unions implement Union. Status and Func are escape
// hatches for status codes chosen at runtime; they are written normally but
// cannot be documented from their type alone.
package results
