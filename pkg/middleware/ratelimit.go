package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"hirehub/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// NewLimiter picks the Redis token bucket when a client is available and the
// in-process limiter otherwise.
func NewLimiter(ctx context.Context, cfg utils.RateLimitConfig, rdb *redis.Client, logger *zap.Logger) Limiter {
	if rdb != nil {
		return NewRedisLimiter(rdb, cfg.Capacity, cfg.RefillInterval)
	}
	logger.Info("redis not configured, using in-memory rate limiter")
	return NewMemoryLimiter(ctx, cfg.Capacity, cfg.RefillInterval)
}

var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
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

// RedisLimiter is a token bucket shared by every instance of the service.
type RedisLimiter struct {
	rdb      *redis.Client
	capacity int
	interval time.Duration
	now      func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, capacity int, interval time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, capacity: capacity, interval: interval, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	ttl := time.Duration(l.capacity)*l.interval + time.Minute

	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{key},
		l.now().UnixMilli(),
		l.capacity,
		l.interval.Milliseconds(),
		int64(ttl/time.Second),
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("run token bucket: %w", err)
	}

	return decodeBucket(vals)
}

func decodeBucket(vals any) (Decision, error) {
	arr, ok := vals.([]any)
	if !ok || len(arr) != 3 {
		return Decision{}, fmt.Errorf("unexpected token bucket result %#v", vals)
	}
	return Decision{
		Allowed:    asInt64(arr[0]) == 1,
		Remaining:  int(asInt64(arr[1])),
		RetryAfter: time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// MemoryLimiter keeps one rate.Limiter per key, dropping idle keys every minute.
type MemoryLimiter struct {
	visitors sync.Map
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func NewMemoryLimiter(ctx context.Context, capacity int, interval time.Duration) *MemoryLimiter {
	if capacity <= 0 {
		capacity = 1
	}
	l := &MemoryLimiter{limit: rate.Every(interval), burst: capacity}
	go l.cleanupVisitors(ctx, time.Minute, 5*time.Minute)
	return l
}

func (l *MemoryLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	v, _ := l.visitors.LoadOrStore(key, &visitor{limiter: rate.NewLimiter(l.limit, l.burst)})
	vi := v.(*visitor)
	vi.lastSeen.Store(now.UnixNano())
	return vi.limiter
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := time.Now()
	lim := l.getLimiter(key, now)

	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return Decision{Allowed: false}, nil
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}, nil
	}

	return Decision{Allowed: true, Remaining: int(math.Max(0, lim.TokensAt(now)))}, nil
}

func (l *MemoryLimiter) cleanupVisitors(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.sweep(now.Add(-idle))
		}
	}
}

func (l *MemoryLimiter) sweep(cutoff time.Time) {
	l.visitors.Range(func(k, v any) bool {
		if v.(*visitor).lastSeen.Load() < cutoff.UnixNano() {
			l.visitors.Delete(k)
		}
		return true
	})
}

// RateLimit throttles requests per client IP and route. Limiter failures let the request through.
func RateLimit(limiter Limiter, cfg utils.RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			key := strings.Join([]string{cfg.Prefix, "ip", ip, "route", r.Method + " " + r.URL.Path}, ":")

			d, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
				utils.ResponseTooManyRequests(w, fmt.Sprintf("Request was throttled. Expected available in %d seconds.", secs))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr. Forwarding headers only
// count when the router runs chi's RealIP behind a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	return r.RemoteAddr
}
