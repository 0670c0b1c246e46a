package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limiterRouter(rl *RateLimiter, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", rl.Limit("test", limit), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterRedisWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := limiterRouter(NewRateLimiter(rdb), 2)

	assert.Equal(t, http.StatusOK, get(r).Code)
	assert.Equal(t, http.StatusOK, get(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r).Code)

	// the window expires and requests flow again
	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, get(r).Code)
}

func TestRateLimiterLocalFallback(t *testing.T) {
	rl := NewRateLimiter(nil)
	now := time.Now()
	rl.nowFunc = func() time.Time { return now }
	r := limiterRouter(rl, 2)

	assert.Equal(t, http.StatusOK, get(r).Code)
	assert.Equal(t, http.StatusOK, get(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r).Code)

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, get(r).Code)
}

func TestRateLimiterFailsOpenOnRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := limiterRouter(NewRateLimiter(rdb), 1)

	require.Equal(t, http.StatusOK, get(r).Code)
	mr.Close()
	// counter unavailable: the limiter must not take the API down
	assert.Equal(t, http.StatusOK, get(r).Code)
}

// failExpireHook makes every EXPIRE command fail while passing all other
// commands through, so INCR can succeed and leave a TTL-less counter.
type failExpireHook struct{}

func (failExpireHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (failExpireHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "expire" {
			err := errors.New("expire unavailable")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (failExpireHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRateLimiterFailsOpenWhenExpireFails(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdb.AddHook(failExpireHook{})
	r := limiterRouter(NewRateLimiter(rdb), 1)

	// a counter that can never expire must not be left behind
	assert.Equal(t, http.StatusOK, get(r).Code)
	assert.False(t, mr.Exists("ratelimit:test:10.1.2.3"))

	// and the client is never throttled by the broken window
	assert.Equal(t, http.StatusOK, get(r).Code)
	assert.Equal(t, http.StatusOK, get(r).Code)
}

func TestRateLimiterZeroDisables(t *testing.T) {
	r := limiterRouter(NewRateLimiter(nil), 0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, get(r).Code)
	}
}
