package webdispatch

import (
	"context"
	"log/slog"
	"time"

	slogcontext "github.com/veqryn/slog-context"
)

// WithLogger logs dispatch events to logger and makes a request-scoped child
// of it available to handlers through slogcontext.FromCtx. The child carries
// controller, action, plugin and prefix attributes.
//
// Resolution failures are logged at warn, handler failures at error, and
// everything else at debug.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger == nil {
			return
		}
		f.logger = logger

		f.hooks.onResolve = append(f.hooks.onResolve, func(ctx context.Context, id Identifier, t *Type) context.Context {
			logger.DebugContext(ctx, "resolved handler",
				slog.String("identifier", id.String()),
				slog.String("type", t.Name),
			)
			return ctx
		})
		f.hooks.onMissing = append(f.hooks.onMissing, func(ctx context.Context, err *MissingHandlerError) {
			logger.WarnContext(ctx, "missing handler",
				slog.String("controller", err.Handler),
				slog.String("plugin", err.Plugin),
				slog.String("prefix", err.Prefix),
				slog.String("ext", err.Ext),
			)
		})
		f.hooks.onHalt = append(f.hooks.onHalt, func(ctx context.Context, _ string, phase Phase) {
			slogcontext.FromCtx(ctx).DebugContext(ctx, "lifecycle halted", slog.String("phase", phase.String()))
		})
		f.hooks.onSuccess = append(f.hooks.onSuccess, func(ctx context.Context, _, _ string, d time.Duration) {
			slogcontext.FromCtx(ctx).DebugContext(ctx, "dispatch succeeded", slog.Duration("duration", d))
		})
		f.hooks.onFailure = append(f.hooks.onFailure, func(ctx context.Context, _, _ string, err error, d time.Duration) {
			slogcontext.FromCtx(ctx).ErrorContext(ctx, "dispatch failed",
				slog.Any("error", err),
				slog.Duration("duration", d),
			)
		})
	}
}
