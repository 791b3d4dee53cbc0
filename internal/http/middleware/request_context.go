package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	headerRequestID = "X-Request-Id"
	headerTraceID   = "X-Trace-Id"
)

// AttachRequestContext assigns each request an id, echoed in the response
// header and available to the request logger. When tracing is active the
// span's trace id is echoed as well. Must run after the tracing middleware.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerRequestID, reqID)

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Set("trace_id", sc.TraceID().String())
			c.Writer.Header().Set(headerTraceID, sc.TraceID().String())
		}

		c.Next()
	}
}
