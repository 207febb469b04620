package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"geoshift/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency replays cached responses for repeated Idempotency-Key
// headers and takes a short redis lock while the first request is in
// flight. Handlers release the lock and fill the cache on success via
// the idempotency_lock_key / idempotency_cache_key context keys.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id_validated")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, response.ApiEnvelope{
				Ok:   true,
				Data: cachedRes,
			})
			return
		}

		// Short expiry so a crashed server does not hold the lock forever.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING",
				"A request with this idempotency key is already in progress", nil)
			c.Abort()
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
