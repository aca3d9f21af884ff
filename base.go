package webdispatch

import (
	"context"
	"net/http"
)

// ActionFunc implements one action of a handler.
type ActionFunc func(ctx context.Context, args []string) (Result, error)

// Base is an embeddable Handler. It holds the request and the response, reads
// the action name from the request, and dispatches actions through a table
// filled with Handle. Its startup and shutdown hooks do nothing.
type Base struct {
	request  Request
	response *Response
	actions  map[string]ActionFunc
}

var _ Handler = (*Base)(nil)

// NewBase returns a Base bound to req with an empty 200 response.
func NewBase(req Request) *Base {
	return &Base{
		request:  req,
		response: NewResponse(http.StatusOK),
		actions:  make(map[string]ActionFunc),
	}
}

// Handle registers fn as the action called name. Registering the same name
// twice replaces the earlier action.
func (b *Base) Handle(name string, fn ActionFunc) {
	b.actions[name] = fn
}

func (b *Base) Request() Request { return b.request }

func (b *Base) Response() *Response { return b.response }

func (b *Base) SetResponse(r *Response) { b.response = r }

func (b *Base) Action() string { return b.request.Param(ParamAction) }

func (b *Base) StartupProcess(context.Context) (*Response, error) { return nil, nil }

func (b *Base) ShutdownProcess(context.Context) (*Response, error) { return nil, nil }

// InvokeAction calls the registered action. Unknown names yield a
// *MissingActionError.
func (b *Base) InvokeAction(ctx context.Context, action string, args []string) (Result, error) {
	fn, ok := b.actions[action]
	if !ok || fn == nil {
		return Result{}, &MissingActionError{
			Handler: b.request.Param(ParamController),
			Action:  action,
		}
	}
	return fn(ctx, args)
}
