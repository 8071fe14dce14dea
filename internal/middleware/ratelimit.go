package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"polemica/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

var rdb *redis.Client

// InitRateLimiter connects the limiter to redis when REDIS_ADDR is set, so
// counters are shared across instances. Without it counters live in the
// process-local LRU cache and reset on restart.
func InitRateLimiter() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, rate limiting uses in-process counters")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable (%v), rate limiting uses in-process counters", err)
		return
	}

	rdb = client
	log.Println("Rate limiter connected to redis")
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

// RateLimit applies a fixed window per client IP.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		var count int
		if rdb != nil {
			n, err := rdb.Incr(c.Request.Context(), key).Result()
			if err == nil {
				if n == 1 {
					rdb.Expire(c.Request.Context(), key, window)
				}
				count = int(n)
			}
			// On redis errors the request passes; throttling is best effort
		} else {
			cache := utils.GetCache()
			now := time.Now()
			if v := cache.Get(key); v != nil {
				wc := v.(windowCounter)
				if now.Before(wc.resetAt) {
					wc.count++
					cache.Set(key, wc, time.Until(wc.resetAt))
					count = wc.count
				} else {
					cache.Set(key, windowCounter{count: 1, resetAt: now.Add(window)}, window)
					count = 1
				}
			} else {
				cache.Set(key, windowCounter{count: 1, resetAt: now.Add(window)}, window)
				count = 1
			}
		}

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Muitas requisições, tente novamente em instantes"})
			return
		}
		c.Next()
	}
}
