package logger

import (
	"context"

	"github.com/ncobase/posts/ctxutil"
)

var traceKey = string(ctxutil.TraceIDKey)

// getTraceID gets a trace ID from the context.
func getTraceID(ctx context.Context) string {
	return ctxutil.GetTraceID(ctx)
}

