package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/eventsynk/eventsynk-backend/config"
)

// RateLimiter returns a Gin middleware that limits requests per IP.
// Uses the Redis store when REDIS_ADDR is configured, memory store otherwise.
func RateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisStore, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "eventsynk:limiter",
		})
		if err != nil {
			log.Printf("⚠️ Redis limiter store unavailable, falling back to memory: %v", err)
			store = memory.NewStore()
		} else {
			log.Println("✅ Rate limiter backed by Redis")
			store = redisStore
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
