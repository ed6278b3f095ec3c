package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"lashdiary/internal/handler/httperr"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const ctxRateLimitedKey = "rate_limited"

var errRateLimited = errors.New("rate limit exceeded")

// Decision is the outcome of taking one token from a bucket.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter interface {
	Take(ctx context.Context, key string) (Decision, error)
}

// NewRateLimitMiddleware limits public endpoints per client IP and route.
// Limiter failures let the request through.
func NewRateLimitMiddleware(cfg config.RateLimitConfig, limiter Limiter, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := buildRateKey(cfg.Prefix, c)
		d, err := limiter.Take(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", "route", routeOf(c), "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))

		if !d.Allowed {
			secs := int(math.Ceil(d.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.Set(ctxRateLimitedKey, true)
			httperr.AbortWithReason(c, http.StatusTooManyRequests, errRateLimited, "Too many requests, please retry later", "rate_limited")
			return
		}
		c.Next()
	}
}

func buildRateKey(prefix string, c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return strings.Join([]string{prefix, "ip", ip, "route", c.Request.Method + " " + routeOf(c)}, ":")
}

var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter keeps buckets in Redis so every instance shares them.
type RedisLimiter struct {
	rdb   redis.Scripter
	cfg   config.RateLimitConfig
	clock clock.Clock
}

func NewRedisLimiter(rdb redis.Scripter, cfg config.RateLimitConfig, clock clock.Clock) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, cfg: cfg, clock: clock}
}

func (l *RedisLimiter) Take(ctx context.Context, key string) (Decision, error) {
	ttl := int64(l.cfg.TTL / time.Second)
	if ttl < 1 {
		ttl = 1
	}
	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{key},
		l.clock.Now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(),
		ttl,
	).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("unexpected token bucket result: %v", vals)
	}
	return Decision{
		Allowed:    vals[0] == 1,
		Remaining:  vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is the single-instance fallback when no Redis is configured.
type LocalLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	clock     clock.Clock
}

func NewLocalLimiter(cfg config.RateLimitConfig, clock clock.Clock) *LocalLimiter {
	limit := rate.Inf
	if cfg.RefillInterval > 0 && cfg.RefillTokens > 0 {
		limit = rate.Limit(float64(cfg.RefillTokens) / cfg.RefillInterval.Seconds())
	}
	return &LocalLimiter{
		buckets:   make(map[string]*localBucket),
		limit:     limit,
		burst:     cfg.Capacity,
		ttl:       cfg.TTL,
		lastSweep: clock.Now(),
		clock:     clock,
	}
}

func (l *LocalLimiter) Take(_ context.Context, key string) (Decision, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return Decision{Allowed: false}, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}, nil
	}
	return Decision{
		Allowed:   true,
		Remaining: int64(math.Max(0, math.Floor(b.limiter.TokensAt(now)))),
	}, nil
}

// sweep drops idle buckets at most once per TTL.
func (l *LocalLimiter) sweep(now time.Time) {
	if l.ttl <= 0 || now.Sub(l.lastSweep) < l.ttl {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.ttl {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
