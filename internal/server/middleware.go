package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/posts/ctxutil"
	"github.com/ncobase/posts/ecode"
	"github.com/ncobase/posts/logging/observes"
	"github.com/ncobase/posts/net/resp"
	"go.opentelemetry.io/otel/attribute"
)

// TraceHeader carries the request trace id in and out.
const TraceHeader = "X-Trace-Id"

var errMethodNotAllowed = ecode.New(ecode.MethodNotAllowed, "method not allowed")

// traceMiddleware opens the request span and makes sure the request carries a
// trace id. An inbound header wins, then the span's own id, then a new uuid.
func (s *Server) traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := observes.StartSpan(c.Request.Context(), observes.LayerHandler,
			c.Request.Method+" "+c.FullPath(),
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.target", c.Request.URL.Path),
		)

		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = observes.TraceID(ctx)
		}
		if traceID != "" {
			ctx = ctxutil.SetTraceID(ctx, traceID)
		} else {
			ctx, traceID = ctxutil.EnsureTraceID(ctx)
		}
		c.Set(string(ctxutil.TraceIDKey), traceID)
		c.Header(TraceHeader, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.End(fmt.Errorf("%s", http.StatusText(status)))
			return
		}
		span.End(nil)
	}
}

// loggerMiddleware logs every request on the way in and out.
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		ctx := c.Request.Context()

		s.logger.Info(ctx, "HTTP request started", "method", method, "path", path)

		c.Next()

		s.logger.Info(ctx, "HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// recoveryMiddleware turns a panic into a 500 envelope.
func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		s.logger.Error(c.Request.Context(), "panic recovered", "panic", fmt.Sprint(recovered), "path", c.Request.URL.Path)
		resp.Write(c.Writer, resp.InternalServer(ecode.Text(ecode.ServerErr)))
		c.Abort()
	})
}

// faultMiddleware reports server-side failures to Sentry.
func (s *Server) faultMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			observes.CaptureFault(c.Request, status, fmt.Sprintf("%s %s returned %d", c.Request.Method, c.Request.URL.Path, status))
		}
	}
}
