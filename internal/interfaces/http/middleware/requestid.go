package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tickettracker/internal/shared/constants"
)

const maxRequestIDLength = 64

// RequestID reuses a sane incoming X-Request-ID or generates one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderXRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, id)
		c.Header(constants.HeaderXRequestID, id)
		c.Next()
	}
}
