package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	rate     int
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	ips       map[string][]time.Time
	lastSweep time.Time
}

// NewRateLimiter allows rate requests per client IP within every interval.
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		interval: interval,
		now:      time.Now,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		now := rl.now()
		cutoff := now.Add(-rl.interval)
		rl.sweepLocked(now, cutoff)

		valid := rl.ips[ip][:0]
		for _, t := range rl.ips[ip] {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}

		if len(valid) >= rl.rate {
			rl.ips[ip] = valid
			rl.mu.Unlock()
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		rl.ips[ip] = append(valid, now)
		rl.mu.Unlock()

		c.Next()
	}
}

// sweepLocked drops IPs with no request inside the window, at most once per interval.
func (rl *RateLimiter) sweepLocked(now, cutoff time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	rl.lastSweep = now
	for ip, times := range rl.ips {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.ips, ip)
		}
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter is a token bucket per IP. Buckets idle for longer than idle are
// full again, so evicting them changes nothing for the caller.
type loginLimiter struct {
	every time.Duration
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newLoginLimiter(every time.Duration, burst int) *loginLimiter {
	return &loginLimiter{
		every:    every,
		burst:    burst,
		idle:     every * time.Duration(burst),
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.lastSweep = now
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) >= l.idle {
				delete(l.visitors, key)
			}
		}
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *loginLimiter) handle(c *gin.Context) {
	if !l.allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"status":  false,
			"message": "too many attempts, please wait a moment",
		})
		c.Abort()
		return
	}
	c.Next()
}

// NewStrictRateLimiter guards the login endpoint: 5 attempts per minute per IP.
func NewStrictRateLimiter() gin.HandlerFunc {
	return newLoginLimiter(time.Minute/5, 5).handle
}
