package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"accident-risk-api/services"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "accidentrisk:ratelimit"

// RateLimit limits requests per client IP. Counters live in Redis when the
// cache is connected so that replicas share them, in memory otherwise.
func RateLimit(formatted string, cache *services.CacheService) (gin.HandlerFunc, error) {
	if formatted == "" || strings.EqualFold(formatted, "off") {
		return func(c *gin.Context) { c.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	if cache.Available() {
		store, err = redisstore.NewStoreWithOptions(cache.Client(), limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			return nil, fmt.Errorf("rate limit store: %w", err)
		}
	}

	return ginlimiter.NewMiddleware(
		limiter.New(store, rate),
		ginlimiter.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		}),
	), nil
}
