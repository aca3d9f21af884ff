package webdispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"time"

	slogcontext "github.com/veqryn/slog-context"
)

// Phase is a step of the handler lifecycle.
type Phase uint8

const (
	PhaseStartup Phase = iota
	PhaseAction
	PhaseShutdown
)

func (p Phase) String() string {
	switch p {
	case PhaseStartup:
		return "startup"
	case PhaseAction:
		return "action"
	case PhaseShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Option configures a Factory.
type Option func(*Factory)

// Factory resolves requests to handlers and drives them through their
// lifecycle.
//
// Usage:
//  1. Register handler constructors in a Registry (or any Resolver)
//  2. Create a factory with New
//  3. Call Dispatch for each request, or Create and Invoke separately
//
// Factory holds no per-request state and is safe for concurrent use.
type Factory struct {
	resolver Resolver
	cfg      Config
	hooks    hooks
	logger   *slog.Logger
}

// New creates a Factory that looks handler types up in resolver.
//
// Example:
//
//	reg := webdispatch.NewRegistry()
//	reg.Register("Articles", NewArticlesController(store))
//
//	f := webdispatch.New(reg,
//	    webdispatch.WithLogger(logger),
//	    webdispatch.WithOnSuccess(func(ctx context.Context, controller, action string, d time.Duration) {
//	        metrics.Timing("dispatch.success", d)
//	    }),
//	)
func New(resolver Resolver, opts ...Option) *Factory {
	f := &Factory{
		resolver: resolver,
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.cfg.CacheSize > 0 {
		if _, cached := f.resolver.(*CachedResolver); !cached {
			// Only a non-positive size makes the cache constructor fail.
			if c, err := NewCachedResolver(f.resolver, f.cfg.CacheSize); err == nil {
				f.resolver = c
			}
		}
	}
	return f
}

// WithConfig sets the factory configuration. A positive CacheSize wraps the
// resolver in a CachedResolver.
//
// AppNamespace and FallbackNamespaces are not read by the factory; they only
// take effect through Config.NewRegistry.
func WithConfig(cfg Config) Option {
	return func(f *Factory) {
		f.cfg = cfg
	}
}

// Resolver returns the resolver the factory consults, including any cache
// installed by WithConfig.
func (f *Factory) Resolver() Resolver {
	return f.resolver
}

// Create builds the handler for req.
//
// The handler name from the request is validated, looked up in the resolver,
// and instantiated with req. An invalid name, an unknown type, and an
// abstract or interface type all yield the same *MissingHandlerError.
func (f *Factory) Create(ctx context.Context, req Request) (Handler, error) {
	_, h, err := f.create(ctx, req)
	return h, err
}

func (f *Factory) create(ctx context.Context, req Request) (context.Context, Handler, error) {
	id, err := BuildIdentifier(req)
	if err != nil {
		var missing *MissingHandlerError
		if errors.As(err, &missing) {
			f.callOnMissing(ctx, missing)
		}
		return ctx, nil, err
	}

	t, ok := f.resolver.Resolve(id.Lookup(), id.Namespace, Category)
	if !ok || t == nil || t.Kind != KindConcrete || t.New == nil {
		return ctx, nil, f.reject(ctx, req)
	}

	ctx = f.callOnResolve(ctx, id, t)

	h := t.New(req)
	if h == nil {
		return ctx, nil, f.reject(ctx, req)
	}
	return ctx, h, nil
}

func (f *Factory) reject(ctx context.Context, req Request) error {
	err := missingHandler(req)
	f.callOnMissing(ctx, err)
	return err
}

// Invoke runs h through its lifecycle and returns the final response.
//
// The lifecycle:
//  1. StartupProcess; a response ends the request here
//  2. InvokeAction with h.Action() and the request's pass arguments; a
//     Respond result replaces the handler's response
//  3. ShutdownProcess; a response ends the request here
//  4. Otherwise the handler's own response is returned
//
// Errors from any phase are returned as-is. An action result that is neither
// NoResponse nor Respond with a response yields ErrInvalidResult.
func (f *Factory) Invoke(ctx context.Context, h Handler) (*Response, error) {
	req := h.Request()
	controller := req.Param(ParamController)
	action := req.Param(ParamAction)

	if f.logger != nil {
		ctx = slogcontext.NewCtx(ctx, f.logger.With(
			slog.String("controller", controller),
			slog.String("action", action),
			slog.String("plugin", req.Param(ParamPlugin)),
			slog.String("prefix", req.Param(ParamPrefix)),
		))
	}

	f.callOnInvoke(ctx, controller, action)

	start := time.Now()
	resp, err := f.run(ctx, h, controller)
	duration := time.Since(start)

	if err != nil {
		f.callOnFailure(ctx, controller, action, err, duration)
		return nil, err
	}
	f.callOnSuccess(ctx, controller, action, duration)
	return resp, nil
}

// Dispatch creates the handler for req and invokes it.
func (f *Factory) Dispatch(ctx context.Context, req Request) (*Response, error) {
	ctx, h, err := f.create(ctx, req)
	if err != nil {
		return nil, err
	}
	return f.Invoke(ctx, h)
}

func (f *Factory) run(ctx context.Context, h Handler, controller string) (resp *Response, err error) {
	if f.cfg.RecoverPanics {
		defer func() {
			if r := recover(); r != nil {
				resp = nil
				err = &panicError{value: r, stack: debug.Stack()}
			}
		}()
	}
	return f.lifecycle(ctx, h, controller)
}

func (f *Factory) lifecycle(ctx context.Context, h Handler, controller string) (*Response, error) {
	resp, err := h.StartupProcess(ctx)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		f.callOnHalt(ctx, controller, PhaseStartup)
		return resp, nil
	}

	action := h.Action()
	args := slices.Clone(h.Request().Pass())
	result, err := h.InvokeAction(ctx, action, args)
	if err != nil {
		return nil, err
	}
	if !result.valid() {
		return nil, fmt.Errorf("%w: %s::%s()", ErrInvalidResult, controller, action)
	}
	if r := result.Response(); r != nil {
		h.SetResponse(r)
	}

	resp, err = h.ShutdownProcess(ctx)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		f.callOnHalt(ctx, controller, PhaseShutdown)
		return resp, nil
	}

	return h.Response(), nil
}
