package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"gallery-auctions/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errTooManyBids = errors.New("bid rate limit exceeded")

// BidRateLimiter throttles bid submissions per client IP
type BidRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewBidRateLimiter allows perSecond bids per client with the given burst.
// Call Stop to end the background cleanup.
func NewBidRateLimiter(perSecond float64, burst int) *BidRateLimiter {
	rl := &BidRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop(time.Minute)
	return rl
}

// Allow reports whether the client may place another bid now
func (rl *BidRateLimiter) Allow(client string) bool {
	now := rl.now()

	rl.mu.Lock()
	entry, ok := rl.limiters[client]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[client] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// Middleware rejects over-limit requests with 429
func (rl *BidRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if !rl.Allow(client) {
			utils.JSONError(c, http.StatusTooManyRequests, errTooManyBids, "too many bids")
			utils.Warn("bid rate limit exceeded", map[string]any{"client_ip": client, "path": c.Request.URL.Path})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *BidRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *BidRateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup drops limiters of clients idle for longer than idleTTL
func (rl *BidRateLimiter) cleanup() {
	threshold := rl.now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, entry := range rl.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(rl.limiters, client)
		}
	}
}
