package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"msgrelay/internal/app/adapters/metrics"
)

func (m *Middlewares) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.limiterFor(c.ClientIP()).Allow() {
			metrics.RateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
