package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/shared"
)

const (
	// CorrelationIDHeader carries the request correlation id in and out
	CorrelationIDHeader = "X-Correlation-ID"
	// CorrelationIDKey is the gin context key of the correlation id
	CorrelationIDKey = "correlation_id"

	maxCorrelationIDLength = 128
)

// CorrelationID propagates the caller's correlation id, or generates one, and makes
// it available to handlers (gin context) and services (request context)
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" || len(correlationID) > maxCorrelationIDLength {
			correlationID = uuid.NewString()
		}

		c.Header(CorrelationIDHeader, correlationID)
		c.Set(CorrelationIDKey, correlationID)
		c.Request = c.Request.WithContext(shared.ContextWithCorrelationID(c.Request.Context(), correlationID))
		c.Next()
	}
}

// GetCorrelationID returns the request's correlation id, or "" outside the middleware
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(CorrelationIDKey)
}
