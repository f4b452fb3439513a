// Package ctxutil carries request-scoped values between the gin layer and
// plain context.Context consumers.
//
//	ctx, traceID := ctxutil.EnsureTraceID(c.Request.Context())
//	log.Info(ctx, "handled", "trace", traceID)
package ctxutil
