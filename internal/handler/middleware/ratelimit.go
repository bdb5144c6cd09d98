package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"boardinghouse/internal/handler/httperr"
	"boardinghouse/internal/pkg/config"
	"boardinghouse/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

const (
	minLimiterIdle = time.Minute
	// buckets that never refill are kept this long before a client starts over
	noRefillLimiterIdle = time.Hour
)

// IPRateLimiter keeps one token bucket per client IP. Buckets untouched for idle
// are dropped; by then they have refilled, so a new one behaves the same.
type IPRateLimiter struct {
	limiters *cache.Cache
	r        rate.Limit
	b        int
	idle     time.Duration
}

func NewIPRateLimiter(r rate.Limit, b int, idle time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: cache.New(idle, idle),
		r:        r,
		b:        b,
		idle:     idle,
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	if v, found := i.limiters.Get(ip); found {
		limiter := v.(*rate.Limiter)
		i.limiters.Set(ip, limiter, i.idle)
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	if err := i.limiters.Add(ip, limiter, i.idle); err != nil {
		// another request for the same IP won the race
		if v, found := i.limiters.Get(ip); found {
			return v.(*rate.Limiter)
		}
		i.limiters.Set(ip, limiter, i.idle)
	}
	return limiter
}

// Tracked is the number of client buckets currently held.
func (i *IPRateLimiter) Tracked() int {
	return i.limiters.ItemCount()
}

// limiterIdle is how long a bucket needs to refill from empty, floored at a minute.
func limiterIdle(cfg config.RateLimitConfig) time.Duration {
	if cfg.PerSecond <= 0 {
		return noRefillLimiterIdle
	}
	refill := time.Duration(math.Ceil(float64(max(cfg.Burst, 1))/cfg.PerSecond)) * time.Second
	return max(refill, minLimiterIdle)
}

// RateLimiter throttles anonymous-friendly write endpoints such as booking creation.
func RateLimiter(cfg config.RateLimitConfig) gin.HandlerFunc {
	limiter := NewIPRateLimiter(rate.Limit(cfg.PerSecond), cfg.Burst, limiterIdle(cfg))
	retryAfter := "60"
	if cfg.PerSecond > 0 {
		retryAfter = strconv.Itoa(max(1, int(math.Ceil(1/cfg.PerSecond))))
	}
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", retryAfter)
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, httperr.CodeRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}
