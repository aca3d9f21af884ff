package webdispatch

import (
	"errors"
	"net/http"
)

// RouteFunc extracts routing parameters from an HTTP request. It stands in
// for the router that runs before dispatch.
type RouteFunc func(r *http.Request) (Request, error)

// HTTPHandler serves HTTP requests through f. route supplies the routing
// parameters; a route error is answered with 404.
//
// Missing handlers are answered with 404, every other error with 500. A nil
// final response is answered with 204.
func HTTPHandler(f *Factory, route RouteFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := route(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		resp, err := f.Dispatch(r.Context(), req)
		if err != nil {
			http.Error(w, http.StatusText(StatusCode(err)), StatusCode(err))
			return
		}
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = resp.WriteTo(w)
	})
}

// StatusCode maps a dispatch error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingHandler), errors.Is(err, ErrMissingAction):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
