package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
	"portfolio-backend/internal/models"
)

// limiterCapacity bounds how many client addresses are tracked at once.
const limiterCapacity = 10000

// RateLimit allows perMinute requests per client IP, with bursts of the same size.
func RateLimit(perMinute int) gin.HandlerFunc {
	limiters, err := lru.New[string, *rate.Limiter](limiterCapacity)
	if err != nil {
		panic(err)
	}
	var mu sync.Mutex
	every := rate.Every(time.Minute / time.Duration(perMinute))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters.Get(ip)
		if !ok {
			limiter = rate.NewLimiter(every, perMinute)
			limiters.Add(ip, limiter)
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "too many login attempts",
				Message: "try again in a minute",
			})
			return
		}
		c.Next()
	}
}
