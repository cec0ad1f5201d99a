package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
)

// RateLimiter provides fixed-window request rate limiting per client IP.
type RateLimiter struct {
	requests map[string]*clientInfo
	mu       sync.Mutex
	rate     int           // requests per window
	window   time.Duration // time window
	now      func() time.Time
}

type clientInfo struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a rate limiter allowing rate requests per window.
// Stale clients are evicted until ctx is done.
func NewRateLimiter(ctx context.Context, rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     rate,
		window:   window,
		now:      time.Now,
	}

	go rl.cleanup(ctx)

	logger.Default().Debug("rate limiter initialized",
		logger.Int("rate", rate),
		logger.Duration("window", window),
	)

	return rl
}

// cleanup removes stale entries periodically
func (rl *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict()
		}
	}
}

func (rl *RateLimiter) evict() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cleaned := 0
	for ip, info := range rl.requests {
		if now.Sub(info.windowStart) > rl.window*2 {
			delete(rl.requests, ip)
			cleaned++
		}
	}
	return cleaned
}

// allow records a request from ip. It returns whether the request is within
// the limit and the seconds left in the current window.
func (rl *RateLimiter) allow(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	info, exists := rl.requests[ip]
	if !exists || now.Sub(info.windowStart) >= rl.window {
		rl.requests[ip] = &clientInfo{count: 1, windowStart: now}
		return rl.rate > 0, int(rl.window.Seconds())
	}

	info.count++
	retryAfter := int((rl.window - now.Sub(info.windowStart)).Seconds()) + 1
	return info.count <= rl.rate, retryAfter
}

// RateLimit returns a middleware rejecting clients above the limiter's rate
// with a 429 problem response.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, retryAfter := limiter.allow(ip)
		if !allowed {
			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("client_ip", ip),
				logger.Int("limit", limiter.rate),
				logger.Duration("window", limiter.window),
			)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
