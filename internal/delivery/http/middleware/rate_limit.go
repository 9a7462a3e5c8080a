package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"devconnector-backend/internal/delivery/http/response"
	"devconnector-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for fixed-window rate limiting.
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
}

// LoginRateLimitConfig returns the strict config for the login endpoint.
func LoginRateLimitConfig(limit, windowSeconds int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    time.Duration(windowSeconds) * time.Second,
		KeyPrefix: "rl:login:",
	}
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

var (
	rateLimitStore = sync.Map{}
	cleanupOnce    sync.Once
)

// Lua script for atomic increment with TTL set on the first hit.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			rateLimitStore.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rateLimitStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// RateLimit limits requests per client IP over a fixed window. Counters live
// in Redis when configured; otherwise an in-memory fallback is used, which is
// per-process only.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		var count int
		if client := redis.Client(); client != nil {
			n, err := redisIncrement(c.Request.Context(), client, key, cfg.Window)
			if err == nil {
				count = n
			} else {
				// Redis down: fall open to the in-memory counter rather
				// than rejecting every request.
				count = memoryIncrement(key, cfg.Window)
			}
		} else {
			count = memoryIncrement(key, cfg.Window)
		}

		if count > cfg.Limit {
			c.Header("Retry-After", fmt.Sprintf("%d", int(cfg.Window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func redisIncrement(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, error) {
	res, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, err
	}
	count, ok := res.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected redis eval result type %T", res)
	}
	return int(count), nil
}

func memoryIncrement(key string, window time.Duration) int {
	now := time.Now()
	value, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := value.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count
}
