package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tickettracker/internal/infrastructure/ratelimit"
	"tickettracker/internal/shared/constants"
)

type countingLimiter struct {
	max  int
	seen map[string]int
	err  error
}

func (l *countingLimiter) Allow(_ context.Context, key string, _ ratelimit.Limits) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.seen[key]++
	return l.seen[key] <= l.max, nil
}

func rateLimitedEngine(limiter Limiter, userID any) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != nil {
			c.Set(constants.ContextKeyUserID, userID)
		}
	})
	r.Use(UserRateLimit(limiter, ratelimit.Limits{PerMinute: 2}, nopLogger{}))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestUserRateLimit(t *testing.T) {
	limiter := &countingLimiter{max: 2, seen: map[string]int{}}
	r := rateLimitedEngine(limiter, uint(7))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 3, limiter.seen["user:7"])
}

func TestUserRateLimit_PassesThrough(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		limiter := &countingLimiter{max: 0, seen: map[string]int{}}
		w := httptest.NewRecorder()
		rateLimitedEngine(limiter, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, limiter.seen)
	})

	t.Run("limiter error", func(t *testing.T) {
		limiter := &countingLimiter{err: errors.New("redis down")}
		w := httptest.NewRecorder()
		rateLimitedEngine(limiter, uint(1)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
