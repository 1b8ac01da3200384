package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockkeeper/internal/domain"
	"stockkeeper/internal/pkg/cache"
	"stockkeeper/internal/pkg/logger"
	"stockkeeper/internal/pkg/token"
)

func okHandler(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuthAndPermission(t *testing.T) {
	log := logger.NewNop()
	tokens := token.NewService("secret", time.Hour)
	auth := NewAuthMiddleware(tokens, log)
	adminOnly := auth(PermissionMiddleware(log, domain.RoleAdmin)(okHandler))

	employeeToken, err := tokens.GenerateToken(domain.Account{Username: "ana", Role: domain.RoleEmployee})
	require.NoError(t, err)
	adminToken, err := tokens.GenerateToken(domain.Account{Username: "root", Role: domain.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized},
		{"employee on admin route", "Bearer " + employeeToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/get_employees", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			adminOnly(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuth_AttachesClaims(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	signed, err := tokens.GenerateToken(domain.Account{ExternalID: "W1", Username: "ana", Role: domain.RoleEmployee})
	require.NoError(t, err)

	var got UserClaims
	h := NewAuthMiddleware(tokens, logger.NewNop())(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserClaimsFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodPost, "/update_inventory", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	h(httptest.NewRecorder(), req)

	assert.Equal(t, UserClaims{AccountID: "W1", Username: "ana", Role: domain.RoleEmployee}, got)
}

// counterCache é um cache.Client em memória suficiente para o rate limiter.
type counterCache struct {
	cache.NopClient
	mu     sync.Mutex
	counts map[string]int
}

func (c *counterCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key] = value.(int)
	return nil
}

func (c *counterCache) GetInt(_ context.Context, key string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.counts[key]
	if !ok {
		return 0, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *counterCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return int64(c.counts[key]), nil
}

func TestRateLimiter(t *testing.T) {
	c := &counterCache{counts: map[string]int{}}
	h := RateLimiter(c, 2, time.Minute, logger.NewNop())(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/ping", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogger(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}
