package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// counterHook answers INCR, EXPIRE and DEL in memory so no server is needed.
type counterHook struct {
	mu         sync.Mutex
	counters   map[string]int64
	expired    map[string]string
	failExpire bool
}

func newCounterHook() *counterHook {
	return &counterHook{counters: map[string]int64{}, expired: map[string]string{}}
}

func (h *counterHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled in tests")
	}
}

func (h *counterHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		key := fmt.Sprint(cmd.Args()[1])
		switch cmd.Name() {
		case "incr":
			h.counters[key]++
			cmd.(*redis.IntCmd).SetVal(h.counters[key])
		case "expire":
			if h.failExpire {
				err := errors.New("expire failed")
				cmd.SetErr(err)
				return err
			}
			h.expired[key] = fmt.Sprint(cmd.Args()[2])
			cmd.(*redis.BoolCmd).SetVal(true)
		case "del":
			delete(h.counters, key)
			cmd.(*redis.IntCmd).SetVal(1)
		default:
			err := fmt.Errorf("unexpected command %s", cmd.Name())
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func (h *counterHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newHookedClient(hook *counterHook) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	return client
}

func rateLimitedRouter(client *redis.Client, limit int) *gin.Engine {
	router := setupTestRouter()
	router.Use(RateLimitMiddleware(client, limit, time.Minute))
	router.GET("/reviews", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func get(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/reviews", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_NoRedis(t *testing.T) {
	router := rateLimitedRouter(nil, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(router).Code)
	}
}

func TestRateLimitMiddleware_BlocksOverLimit(t *testing.T) {
	hook := newCounterHook()
	router := rateLimitedRouter(newHookedClient(hook), 2)

	w := get(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, get(router).Code)

	w = get(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Len(t, hook.expired, 1)
	for _, ttl := range hook.expired {
		assert.Equal(t, "60", ttl)
	}
}

func TestRateLimitMiddleware_ExpireFailureDropsCounter(t *testing.T) {
	hook := newCounterHook()
	hook.failExpire = true
	router := rateLimitedRouter(newHookedClient(hook), 5)

	w := get(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit check failed")
	assert.Empty(t, hook.counters)
}
