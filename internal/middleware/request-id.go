package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const headerRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key the request id is stored
// under; handlers can read it with c.GetString.
const ContextKeyRequestID = "request_id"

// RequestID assigns every request an id, honouring one supplied by the
// caller, and echoes it back in the response header. A request-scoped
// logger entry carrying the id is attached for downstream use.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Set(contextKeyLogger, log.WithField(ContextKeyRequestID, requestID))
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}

const contextKeyLogger = "request_logger"

// Logger returns the request-scoped logrus entry set by RequestID, or the
// standard logger when the middleware is not installed.
func Logger(c *gin.Context) *log.Entry {
	if v, ok := c.Get(contextKeyLogger); ok {
		if entry, ok := v.(*log.Entry); ok {
			return entry
		}
	}
	return log.NewEntry(log.StandardLogger())
}
