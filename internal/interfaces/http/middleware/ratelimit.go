package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tickettracker/internal/infrastructure/ratelimit"
	"tickettracker/internal/shared/constants"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

// Limiter decides whether a keyed caller may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string, limits ratelimit.Limits) (bool, error)
}

// UserRateLimit throttles authenticated callers by user id and must run
// after RequireAuth. Requests pass through when the limiter itself fails.
func UserRateLimit(limiter Limiter, limits ratelimit.Limits, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(constants.ContextKeyUserID)
		if !ok {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), fmt.Sprintf("user:%v", userID), limits)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err, "user_id", userID)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests, please slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
