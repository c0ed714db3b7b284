package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies a per-client token bucket to mutation routes.
// Clients are keyed by remote IP; idle limiters are dropped after an hour.
func RateLimitMiddleware(rps rate.Limit, burst int) gin.HandlerFunc {
	type entry struct {
		limiter *rate.Limiter
		seen    time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
	)

	// Periodic sweep keeps the map bounded.
	go func() {
		for range time.Tick(10 * time.Minute) {
			mu.Lock()
			for ip, e := range clients {
				if time.Since(e.seen) > time.Hour {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(rps, burst)}
			clients[ip] = e
		}
		e.seen = time.Now()
		mu.Unlock()

		if !e.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "too many requests",
			})
			return
		}

		c.Next()
	}
}
