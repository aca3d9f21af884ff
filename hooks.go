package webdispatch

import (
	"context"
	"time"
)

// OnResolveFunc is called after a request resolves to a concrete type and
// before the handler is built. Use it to enrich the context with logging
// fields or trace spans; the returned context is used by Dispatch for the
// rest of the request.
type OnResolveFunc func(ctx context.Context, id Identifier, t *Type) context.Context

// OnMissingFunc is called when a request cannot be resolved to a handler.
type OnMissingFunc func(ctx context.Context, err *MissingHandlerError)

// OnInvokeFunc is called just before the startup phase.
type OnInvokeFunc func(ctx context.Context, controller, action string)

// OnHaltFunc is called when a lifecycle hook returns a response and ends the
// request early.
type OnHaltFunc func(ctx context.Context, controller string, phase Phase)

// OnSuccessFunc is called after the lifecycle completes without error.
type OnSuccessFunc func(ctx context.Context, controller, action string, duration time.Duration)

// OnFailureFunc is called after any phase fails.
type OnFailureFunc func(ctx context.Context, controller, action string, err error, duration time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onResolve []OnResolveFunc
	onMissing []OnMissingFunc
	onInvoke  []OnInvokeFunc
	onHalt    []OnHaltFunc
	onSuccess []OnSuccessFunc
	onFailure []OnFailureFunc
}

// WithOnResolve adds a hook called after a request resolves to a concrete
// type. Multiple hooks are called in order, with context chaining through
// each.
//
// Example:
//
//	webdispatch.WithOnResolve(func(ctx context.Context, id webdispatch.Identifier, t *webdispatch.Type) context.Context {
//	    return trace.WithSpanName(ctx, t.Name)
//	})
func WithOnResolve(fn OnResolveFunc) Option {
	return func(f *Factory) {
		f.hooks.onResolve = append(f.hooks.onResolve, fn)
	}
}

// WithOnMissing adds a hook called when a request does not resolve to a
// handler. The error is returned to the caller regardless.
//
// Example:
//
//	webdispatch.WithOnMissing(func(ctx context.Context, err *webdispatch.MissingHandlerError) {
//	    metrics.Incr("dispatch.missing", "plugin:"+err.Plugin)
//	})
func WithOnMissing(fn OnMissingFunc) Option {
	return func(f *Factory) {
		f.hooks.onMissing = append(f.hooks.onMissing, fn)
	}
}

// WithOnInvoke adds a hook called just before the startup phase.
func WithOnInvoke(fn OnInvokeFunc) Option {
	return func(f *Factory) {
		f.hooks.onInvoke = append(f.hooks.onInvoke, fn)
	}
}

// WithOnHalt adds a hook called when startup or shutdown returns a response.
func WithOnHalt(fn OnHaltFunc) Option {
	return func(f *Factory) {
		f.hooks.onHalt = append(f.hooks.onHalt, fn)
	}
}

// WithOnSuccess adds a hook called after the lifecycle completes.
//
// Example:
//
//	webdispatch.WithOnSuccess(func(ctx context.Context, controller, action string, d time.Duration) {
//	    metrics.Timing("dispatch.success", d, "controller:"+controller)
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(f *Factory) {
		f.hooks.onSuccess = append(f.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after a lifecycle phase fails.
//
// Example:
//
//	webdispatch.WithOnFailure(func(ctx context.Context, controller, action string, err error, d time.Duration) {
//	    logger.Error("action failed", "controller", controller, "error", err)
//	})
func WithOnFailure(fn OnFailureFunc) Option {
	return func(f *Factory) {
		f.hooks.onFailure = append(f.hooks.onFailure, fn)
	}
}

func (f *Factory) callOnResolve(ctx context.Context, id Identifier, t *Type) context.Context {
	for _, fn := range f.hooks.onResolve {
		ctx = fn(ctx, id, t)
	}
	return ctx
}

func (f *Factory) callOnMissing(ctx context.Context, err *MissingHandlerError) {
	for _, fn := range f.hooks.onMissing {
		fn(ctx, err)
	}
}

func (f *Factory) callOnInvoke(ctx context.Context, controller, action string) {
	for _, fn := range f.hooks.onInvoke {
		fn(ctx, controller, action)
	}
}

func (f *Factory) callOnHalt(ctx context.Context, controller string, phase Phase) {
	for _, fn := range f.hooks.onHalt {
		fn(ctx, controller, phase)
	}
}

func (f *Factory) callOnSuccess(ctx context.Context, controller, action string, d time.Duration) {
	for _, fn := range f.hooks.onSuccess {
		fn(ctx, controller, action, d)
	}
}

func (f *Factory) callOnFailure(ctx context.Context, controller, action string, err error, d time.Duration) {
	for _, fn := range f.hooks.onFailure {
		fn(ctx, controller, action, err, d)
	}
}
