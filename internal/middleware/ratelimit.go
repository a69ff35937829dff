package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

var errTooManyRequests = errors.New("too many requests")

const (
	limiterIdle    = 3 * time.Minute
	limiterCleanup = time.Minute
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per caller.
type RateLimiter struct {
	mu          sync.Mutex
	clients     map[string]*client
	r           rate.Limit
	burst       int
	now         func() time.Time
	lastCleanup time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether key may make another request now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastCleanup) > limiterCleanup {
		for k, c := range rl.clients {
			if now.Sub(c.seen) > limiterIdle {
				delete(rl.clients, k)
			}
		}
		rl.lastCleanup = now
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(rl.r, rl.burst)}
		rl.clients[key] = c
	}
	c.seen = now
	return c.lim.AllowN(now, 1)
}

// RateLimit limits the given procedures per device, falling back to the
// peer address for callers without a device id.
func RateLimit(rl *RateLimiter, procedures ...string) connect.UnaryInterceptorFunc {
	limited := make(map[string]bool, len(procedures))
	for _, p := range procedures {
		limited[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !limited[req.Spec().Procedure] {
				return next(ctx, req)
			}
			key := GetDeviceID(ctx)
			if key == "" {
				key = "peer:" + req.Peer().Addr
			}
			if !rl.Allow(key) {
				return nil, connect.NewError(connect.CodeResourceExhausted, errTooManyRequests)
			}
			return next(ctx, req)
		}
	}
}
