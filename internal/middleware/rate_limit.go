// internal/middleware/rate_limit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/proglide/admin-console/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}
}

// PerMinute builds a limiter allowing n requests a minute per client.
func PerMinute(n, burst int) *RateLimiter {
	if n <= 0 {
		n = 5
	}
	if burst <= 0 {
		burst = n
	}
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(n)), burst)
}

// Sweep forgets clients not seen within idle.
func (rl *RateLimiter) Sweep(idle time.Duration) int {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	n := 0
	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > idle {
			delete(rl.visitors, ip)
			n++
		}
	}
	return n
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getVisitor(c.ClientIP()).Allow() {
			utils.TooManyRequestsResponse(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
