// Package webdispatch turns a routed web request into a handler instance and
// runs that handler's lifecycle.
//
// It sits between the router, which extracts routing parameters from the URL,
// and business logic, which lives in handlers. The package does two things:
//
//   - Resolve: derive a handler type from untrusted routing parameters and
//     instantiate it for the request
//   - Invoke: run startup, the action and shutdown, any of which may end the
//     request early with a response
//
// # Quick Start
//
// Define a handler by embedding Base:
//
//	type ArticlesController struct {
//	    *webdispatch.Base
//	}
//
//	func NewArticlesController(req webdispatch.Request) webdispatch.Handler {
//	    c := &ArticlesController{Base: webdispatch.NewBase(req)}
//	    c.Handle("view", c.view)
//	    return c
//	}
//
//	func (c *ArticlesController) view(ctx context.Context, args []string) (webdispatch.Result, error) {
//	    c.Response().Body = []byte("article " + args[0])
//	    return webdispatch.NoResponse(), nil
//	}
//
// Register it and dispatch requests:
//
//	reg := webdispatch.NewRegistry()
//	reg.Register("Articles", NewArticlesController)
//
//	f := webdispatch.New(reg)
//
//	req := webdispatch.NewParams(map[string]string{
//	    webdispatch.ParamController: "Articles",
//	    webdispatch.ParamAction:     "view",
//	}, "5")
//	resp, err := f.Dispatch(ctx, req)
//
// # Resolution
//
// The handler name comes from the "controller" parameter. It must look like
// a type name: no '\', '/' or '.', and a first character that is not its own
// lower-case form. Names that fail the check are never looked up.
//
// The "prefix" parameter selects a nested namespace. Each '/' separated
// segment is camelized, so the prefix "admin/api" selects the namespace
// "Controller/Admin/Api". The "plugin" parameter selects the plugin that
// owns the handler.
//
// The Resolver maps the validated name and namespace to a Type. Registry is
// the default Resolver: an explicit table filled at startup, so nothing is
// ever instantiated that was not registered. CachedResolver adds a bounded
// LRU cache in front of any Resolver.
//
// Every resolution failure, whether the name was invalid, no type was found,
// or the type is abstract or an interface, yields the same
// *MissingHandlerError carrying the request's controller, plugin, prefix and
// extension.
//
// # Lifecycle
//
// Invoke runs three phases:
//
//  1. StartupProcess: a returned response ends the request
//  2. InvokeAction: called with Action() and the request's pass arguments;
//     a Respond result replaces the handler's response
//  3. ShutdownProcess: a returned response ends the request
//
// When neither hook returns a response, the handler's own response is the
// result. Actions return a Result, either NoResponse or Respond; anything
// else is reported as ErrInvalidResult.
//
// # Hooks
//
// Hooks provide observability without coupling to specific logging or
// metrics systems:
//
//	f := webdispatch.New(reg,
//	    webdispatch.WithOnMissing(func(ctx context.Context, err *webdispatch.MissingHandlerError) {
//	        metrics.Incr("dispatch.missing")
//	    }),
//	    webdispatch.WithOnSuccess(func(ctx context.Context, controller, action string, d time.Duration) {
//	        metrics.Timing("dispatch.success", d, "controller:"+controller)
//	    }),
//	)
//
// Available hooks:
//   - WithOnResolve: Called after resolution, enriches context
//   - WithOnMissing: Called when a request does not resolve
//   - WithOnInvoke: Called before startup
//   - WithOnHalt: Called when startup or shutdown returns a response
//   - WithOnSuccess: Called after the lifecycle completes
//   - WithOnFailure: Called after a phase fails
//
// WithLogger and WithMetrics install ready-made hooks for log/slog and
// Prometheus.
//
// # Thread Safety
//
// Factory, Registry and CachedResolver are safe for concurrent use. Handler
// instances belong to a single request.
package webdispatch
