package webdispatch

import (
	"context"
	"net/http"
)

// Handler is a per-request handler instance. The Factory creates one for each
// request with a registered Constructor and drives it through Invoke.
//
// Most implementations embed *Base and override the hooks they need:
//
//	type ArticlesController struct {
//	    *webdispatch.Base
//	    store ArticleStore
//	}
//
//	func NewArticlesController(store ArticleStore) webdispatch.Constructor {
//	    return func(req webdispatch.Request) webdispatch.Handler {
//	        c := &ArticlesController{Base: webdispatch.NewBase(req), store: store}
//	        c.Handle("view", c.view)
//	        return c
//	    }
//	}
type Handler interface {
	// Request returns the request the handler was built for.
	Request() Request

	// Response returns the handler's current response.
	Response() *Response

	// SetResponse replaces the handler's current response.
	SetResponse(r *Response)

	// Action returns the name of the action to invoke.
	Action() string

	// StartupProcess runs before the action. A non-nil response ends the
	// request without running the action or ShutdownProcess.
	StartupProcess(ctx context.Context) (*Response, error)

	// InvokeAction runs the named action with the request's positional
	// arguments.
	InvokeAction(ctx context.Context, action string, args []string) (Result, error)

	// ShutdownProcess runs after the action. A non-nil response replaces
	// the handler's own response as the final result.
	ShutdownProcess(ctx context.Context) (*Response, error)
}

// Response is the outcome of a dispatched request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// NewResponse returns an empty response with the given status.
func NewResponse(status int) *Response {
	return &Response{Status: status, Header: make(http.Header)}
}

// WriteTo writes the response to w. A zero status is written as 200.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	for k, vs := range r.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(r.Body) == 0 {
		return nil
	}
	_, err := w.Write(r.Body)
	return err
}

type resultKind uint8

const (
	resultNone resultKind = iota
	resultRespond
)

// Result is the outcome of an action. The zero value is NoResponse.
type Result struct {
	kind     resultKind
	response *Response
}

// NoResponse reports that the action left the handler's response in place.
func NoResponse() Result {
	return Result{}
}

// Respond reports that the action produced r, which replaces the handler's
// response.
func Respond(r *Response) Result {
	return Result{kind: resultRespond, response: r}
}

// Response returns the response carried by a Respond result, or nil.
func (r Result) Response() *Response {
	return r.response
}

// valid reports whether r is NoResponse or Respond with a non-nil response.
func (r Result) valid() bool {
	switch r.kind {
	case resultNone:
		return r.response == nil
	case resultRespond:
		return r.response != nil
	default:
		return false
	}
}
