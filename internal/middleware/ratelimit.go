// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/asset-management/internal/core"
)

// Policy describes one named limiter. Keys are namespaced by Name, so the
// global limiter and the token limiter never share a bucket.
type Policy struct {
	Name  string
	Limit redis_rate.Limit
	Key   func(*http.Request) string
	// FailOpen lets requests through when neither Redis nor the in-memory
	// fallback can answer.
	FailOpen bool
	Skip     func(*http.Request) bool
	// Observe is called with Name for every rejected request.
	Observe func(name string)
}

type RateLimiter struct {
	policy   Policy
	redis    *redis_rate.Limiter
	fallback *memoryLimiter
	logger   *slog.Logger
}

func NewRateLimiter(rdb *redis.Client, policy Policy) *RateLimiter {
	if policy.Key == nil {
		policy.Key = ByClientIP
	}
	if policy.Name == "" {
		policy.Name = "default"
	}

	return &RateLimiter{
		policy:   policy,
		redis:    redis_rate.NewLimiter(rdb),
		fallback: newMemoryLimiter(time.Now),
		logger:   slog.Default().With("limiter", policy.Name),
	}
}

// Window builds a limit of requests per window with the given burst.
func Window(requests, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = requests
	}
	return redis_rate.Limit{Rate: requests, Burst: burst, Period: window}
}

func PerMinute(requests, burst int) redis_rate.Limit {
	return Window(requests, burst, time.Minute)
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.policy.Skip != nil && rl.policy.Skip(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := "ratelimit:" + rl.policy.Name + ":" + rl.policy.Key(r)
		res, err := rl.allow(r.Context(), key)
		if err != nil {
			if rl.policy.FailOpen {
				rl.logger.Warn("rate limiter unavailable, allowing request",
					"error", err,
					"key", key,
				)
				next.ServeHTTP(w, r)
				return
			}
			core.JSONError(w, core.NewAppError(
				err,
				"rate limiter unavailable",
				http.StatusServiceUnavailable,
				"SERVICE_UNAVAILABLE",
			))
			return
		}

		writeLimitHeaders(w, rl.policy.Limit, res)

		if res.Allowed > 0 {
			next.ServeHTTP(w, r)
			return
		}

		if rl.policy.Observe != nil {
			rl.policy.Observe(rl.policy.Name)
		}
		rejectLimited(w, res)
	})
}

// allow asks Redis first and drops to the per-process limiter when Redis
// errors.
func (rl *RateLimiter) allow(
	ctx context.Context,
	key string,
) (*redis_rate.Result, error) {
	res, err := rl.redis.Allow(ctx, key, rl.policy.Limit)
	if err == nil {
		return res, nil
	}
	rl.logger.Debug("redis limiter error, using memory limiter", "error", err)
	return rl.fallback.allow(key, rl.policy.Limit)
}

func ByClientIP(r *http.Request) string {
	return "ip:" + ClientIP(r)
}

// ByCaller keys signed-in callers by their lowercased email and anonymous
// ones by IP.
func ByCaller(r *http.Request) string {
	if email := GetEmail(r.Context()); email != "" {
		return "email:" + strings.ToLower(email)
	}
	return ByClientIP(r)
}

// ByCallerRoute is ByCaller scoped to the route shape. Emails and ids in
// the path collapse to a placeholder so /employee/a@x and /employee/b@x
// share a bucket.
func ByCallerRoute(r *http.Request) string {
	return ByCaller(r) + ":route:" + routeShape(r.URL.Path)
}

// ClientIP is the last X-Forwarded-For hop, then X-Real-IP, then the socket
// address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func routeShape(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if isPathParam(seg) {
			segments[i] = "{param}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func isPathParam(seg string) bool {
	if seg == "" {
		return false
	}
	if strings.Contains(seg, "@") {
		return true
	}
	if len(seg) == 36 && strings.Count(seg, "-") == 4 {
		return true
	}
	return strings.Trim(seg, "0123456789") == ""
}

func writeLimitHeaders(
	w http.ResponseWriter,
	limit redis_rate.Limit,
	res *redis_rate.Result,
) {
	h := w.Header()
	resetSecs := int(res.ResetAfter.Round(time.Second).Seconds())

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
	h.Set("X-RateLimit-Reset",
		strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy",
		fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", max(res.Remaining, 0), resetSecs))
}

func rejectLimited(w http.ResponseWriter, res *redis_rate.Result) {
	wait := max(int(res.RetryAfter.Round(time.Second).Seconds()), 1)

	w.Header().Set("Retry-After", strconv.Itoa(wait))
	core.JSON(w, http.StatusTooManyRequests, core.ErrorResponse{
		Success: false,
		Error: core.ErrorBody{
			Code:    "RATE_LIMITED",
			Message: fmt.Sprintf("Too many requests. Try again in %d seconds.", wait),
		},
	})
}

const memorySweepEvery = 5 * time.Minute

type memoryBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter is the per-process token bucket used while Redis is down.
// Idle buckets are swept lazily from allow, so it owns no goroutine.
type memoryLimiter struct {
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*memoryBucket
	lastSweep time.Time
}

func newMemoryLimiter(now func() time.Time) *memoryLimiter {
	return &memoryLimiter{
		now:       now,
		buckets:   make(map[string]*memoryBucket),
		lastSweep: now(),
	}
}

func (m *memoryLimiter) allow(
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return nil, fmt.Errorf("memory limiter: invalid limit %s", limit)
	}
	perSec := rate.Limit(float64(limit.Rate) / limit.Period.Seconds())
	interval := time.Duration(float64(time.Second) / float64(perSec))
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= memorySweepEvery {
		for k, b := range m.buckets {
			if now.Sub(b.lastSeen) > 2*memorySweepEvery {
				delete(m.buckets, k)
			}
		}
		m.lastSweep = now
	}

	b, ok := m.buckets[key]
	if !ok {
		b = &memoryBucket{limiter: rate.NewLimiter(perSec, max(limit.Burst, 1))}
		m.buckets[key] = b
	}
	b.lastSeen = now

	res := &redis_rate.Result{
		Limit:      limit,
		ResetAfter: interval,
		RetryAfter: -1,
	}
	if b.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	res.Remaining = max(int(b.limiter.TokensAt(now)), 0)
	return res, nil
}
