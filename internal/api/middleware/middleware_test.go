package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuth(t *testing.T) {
	var gotID int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "42", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not a number", "abc", http.StatusUnauthorized},
		{"negative", "-1", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	assert.Equal(t, int64(42), gotID)
}

type httpCall struct {
	method, path string
	status       int
}

type fakeHTTPRecorder struct {
	calls []httpCall
}

func (f *fakeHTTPRecorder) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	f.calls = append(f.calls, httpCall{method, path, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	rec := &fakeHTTPRecorder{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(rec))
	r.HandleFunc("/appointments/{appointmentId}", okHandler).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/appointments/17", nil))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, httpCall{http.MethodGet, "/appointments/{appointmentId}", http.StatusNoContent}, rec.calls[0])
}

type countingRecorder struct {
	paths []string
}

func (c *countingRecorder) RecordRateLimited(path string) {
	c.paths = append(c.paths, path)
}

func TestRateLimit_LocalLimiter(t *testing.T) {
	rec := &countingRecorder{}
	limiter := NewLocalLimiter(2, time.Minute)

	r := mux.NewRouter()
	r.Use(Auth, RateLimit(limiter, rec, nopLogger{}))
	r.HandleFunc("/appointments/book", okHandler).Methods(http.MethodPost)

	do := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/appointments/book", nil)
		req.Header.Set(UserIDHeader, userID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, do("1"))
	assert.Equal(t, http.StatusNoContent, do("1"))
	assert.Equal(t, http.StatusTooManyRequests, do("1"))
	assert.Equal(t, http.StatusNoContent, do("2"))

	assert.Equal(t, []string{"/appointments/book"}, rec.paths)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("limiter down")
}

func TestRateLimit_ErrorLetsRequestThrough(t *testing.T) {
	h := RateLimit(failingLimiter{}, nil, nopLogger{})(http.HandlerFunc(okHandler))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFallbackLimiter_UnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	limiter := NewFallbackLimiter(
		NewRedisLimiter(rdb, 1, time.Minute, "test"),
		NewLocalLimiter(1, time.Minute),
		nopLogger{},
	)

	ctx := context.Background()
	ok, err := limiter.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
}
