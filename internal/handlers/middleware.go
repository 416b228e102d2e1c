package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimiter caps requests per client IP in fixed windows kept in Redis.
// Redis failures let the request through.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: int64(limit), window: window, now: time.Now}
}

func (l *RateLimiter) key(ip string) string {
	slot := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("redirect:%s:%d", ip, slot)
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := l.key(c.ClientIP())
		n, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limit: %v", err)
			c.Next()
			return
		}
		if n == 1 {
			l.rdb.Expire(ctx, key, l.window)
		}
		if n > l.limit {
			detail(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		detail(c, http.StatusInternalServerError, "Internal server error")
	})
}
