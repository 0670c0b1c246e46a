package middleware

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a fixed one-minute window per client IP. With a
// Redis client the window is shared across instances; without one it
// degrades to an in-process window so development setups still work.
type RateLimiter struct {
	rdb *redis.Client

	mu      sync.Mutex
	local   map[string]*localWindow
	nowFunc func() time.Time
}

type localWindow struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{
		rdb:     rdb,
		local:   make(map[string]*localWindow),
		nowFunc: time.Now,
	}
}

// Limit returns middleware enforcing at most limit requests per minute
// per client IP for the named endpoint group. A Redis outage fails open:
// the edge limiter must never take the API down with it.
func (rl *RateLimiter) Limit(group string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", group, c.ClientIP())
		count, err := rl.incr(c, key)
		if err != nil {
			log.Printf("ratelimit: counter unavailable, allowing request: %v", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests. Please slow down and try again in a minute."})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) incr(c *gin.Context, key string) (int64, error) {
	if rl.rdb != nil {
		ctx := c.Request.Context()
		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			return 0, err
		}
		if count == 1 {
			if err := rl.rdb.Expire(ctx, key, time.Minute).Err(); err != nil {
				// a counter without a TTL would throttle this IP forever;
				// drop it and let the request through
				rl.rdb.Del(ctx, key)
				return 0, err
			}
		}
		return count, nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.nowFunc()
	w := rl.local[key]
	if w == nil || now.After(w.resetAt) {
		w = &localWindow{resetAt: now.Add(time.Minute)}
		rl.local[key] = w
	}
	w.count++
	return int64(w.count), nil
}
