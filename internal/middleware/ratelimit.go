package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	logrus "github.com/sirupsen/logrus"
)

// Throttle applies a fixed-window request limit per client IP and route,
// counted in Redis. It fails open: a nil client or a Redis error lets the
// request through so auth never depends on Redis being up.
func Throttle(rdb *redis.Client, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := "throttle:" + c.ClientIP() + ":" + c.FullPath()

		// ExpireNX starts the window on the first hit only; refreshing
		// the TTL on every increment would keep a busy key alive forever.
		pipe := rdb.Pipeline()
		count := pipe.Incr(c.Request.Context(), key)
		pipe.ExpireNX(c.Request.Context(), key, window)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			logrus.WithError(err).Warn("throttle: redis unavailable, letting request through")
			c.Next()
			return
		}

		if count.Val() > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}
