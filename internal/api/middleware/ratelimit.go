package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter решает, можно ли пропустить ещё один запрос с ключом key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitRecorder учёт отклонённых запросов
type RateLimitRecorder interface {
	RecordRateLimited(path string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter фиксированное окно в Redis, общее для всех реплик сервиса
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int64
	window time.Duration
	prefix string
}

// NewRedisLimiter создает лимитер: не больше limit запросов за window
func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{rdb: rdb, limit: int64(limit), window: window, prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis rate limiter: %w", err)
	}
	return count <= l.limit, nil
}

// LocalLimiter token bucket на ключ в памяти процесса
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLocalLimiter в среднем limit запросов за window, всплеск до limit
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(limit) / window.Seconds()),
		burst:    limit,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.Allow(), nil
}

// FallbackLimiter спрашивает primary, при его ошибке переходит на fallback
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	logger   Logger
}

func NewFallbackLimiter(primary, fallback Limiter, logger Logger) *FallbackLimiter {
	return &FallbackLimiter{primary: primary, fallback: fallback, logger: logger}
}

func (l *FallbackLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := l.primary.Allow(ctx, key)
	if err == nil {
		return ok, nil
	}
	l.logger.Warn("RateLimit: primary limiter failed, using local: %v", err)
	return l.fallback.Allow(ctx, key)
}

// RateLimit ограничивает частоту запросов на пользователя (после Auth) или на IP.
// Ошибка лимитера не блокирует запрос.
func RateLimit(limiter Limiter, recorder RateLimitRecorder, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("RateLimit: limiter error for key=%s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				path := routeTemplate(r)
				logger.Warn("RateLimit: too many requests key=%s path=%s", key, path)
				if recorder != nil {
					recorder.RecordRateLimited(path)
				}
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"слишком много запросов, попробуйте позже"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
