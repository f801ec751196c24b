package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/fhcalc/financial-health-calculator/internal/handler"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimit is the default number of requests per minute
	DefaultRateLimit = 60
	// DefaultBurstSize is the default burst size
	DefaultBurstSize = 10
	// CleanupInterval is how often idle clients are swept
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is how long a client may stay idle before it is forgotten
	LimiterTTL = 10 * time.Minute
)

// Quota is a client's position after one request.
type Quota struct {
	Allowed    bool
	Remaining  int
	Reset      time.Time     // when the bucket is full again
	RetryAfter time.Duration // zero when Allowed
}

// RateLimiter hands out a token bucket per client key.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	perMinute int
	burst     int
	now       func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter with the default settings
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimit, DefaultBurstSize)
}

// NewRateLimiterWithConfig creates a RateLimiter refilling perMinute tokens a
// minute into buckets of burst tokens. Stop releases its sweeper goroutine.
func NewRateLimiterWithConfig(perMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients:   make(map[string]*client),
		perMinute: perMinute,
		burst:     burst,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// perToken is the refill time of a single token.
func (r *RateLimiter) perToken() time.Duration {
	return time.Minute / time.Duration(r.perMinute)
}

// Take spends one token of key's bucket if one is available.
func (r *RateLimiter) Take(key string) Quota {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	cl, ok := r.clients[key]
	if !ok {
		cl = &client{bucket: rate.NewLimiter(rate.Every(r.perToken()), r.burst)}
		r.clients[key] = cl
	}
	cl.lastSeen = now

	allowed := cl.bucket.AllowN(now, 1)
	tokens := max(cl.bucket.TokensAt(now), 0)
	q := Quota{
		Allowed:   allowed,
		Remaining: int(tokens),
		Reset:     now.Add(r.refill(float64(r.burst) - tokens)),
	}
	if !allowed {
		q.RetryAfter = r.refill(1 - tokens)
	}
	return q
}

func (r *RateLimiter) refill(tokens float64) time.Duration {
	return time.Duration(tokens * float64(r.perToken()))
}

// Len returns the number of tracked clients.
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *RateLimiter) sweep() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			r.evict(now)
		case <-r.stop:
			return
		}
	}
}

// evict forgets clients idle for longer than LimiterTTL at now.
func (r *RateLimiter) evict(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, cl := range r.clients {
		if now.Sub(cl.lastSeen) > LimiterTTL {
			delete(r.clients, key)
			log.Debug().Str("client", key).Msg("Dropped idle rate limiter")
		}
	}
}

// Stop ends the sweeper goroutine. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// RateLimitMiddleware limits requests per client IP and reports the quota in
// X-RateLimit-* headers.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	limit := strconv.Itoa(rl.perMinute)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			q := rl.Take(ip)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(q.Reset.Unix(), 10))
			if q.Allowed {
				return next(c)
			}

			retryAfter := max(int(math.Ceil(q.RetryAfter.Seconds())), 1)
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			log.Warn().Str("client", ip).Int("retry_after", retryAfter).Msg("Rate limit exceeded")
			return handler.NewRateLimitError(c, retryAfter)
		}
	}
}
