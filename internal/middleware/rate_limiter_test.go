package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func resetVisitors(rps, burst int) {
	mu.Lock()
	visitors = make(map[string]*visitor)
	requestsPerSecond = rps
	burstSize = burst
	mu.Unlock()
}

func TestRateLimiter_BurstThenLimited(t *testing.T) {
	resetVisitors(5, 10)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	doRequest := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, handler(c))
		return rec.Code
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doRequest("10.0.0.1:1234"), "request %d within burst", i)
	}

	// Limiter responds through the error envelope, not a returned error.
	assert.Equal(t, http.StatusTooManyRequests, doRequest("10.0.0.1:1234"))
}

func TestRateLimiterWithConfig(t *testing.T) {
	resetVisitors(5, 10)

	e := echo.New()
	handler := RateLimiterWithConfig(2, 4)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiter_IPsAreIndependent(t *testing.T) {
	resetVisitors(5, 10)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, addr := range []string{"10.0.1.1:1234", "10.0.1.2:1234", "10.0.1.3:1234"} {
		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			assert.NoError(t, handler(c))
			assert.Equal(t, http.StatusOK, rec.Code, "request %d for %s", i, addr)
		}
	}
}

func TestGetIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For wins",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "203.0.113.8"},
			remoteAddr: "127.0.0.1:12345",
			expected:   "203.0.113.7",
		},
		{
			name:       "X-Real-IP when no forwarded header",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			remoteAddr: "127.0.0.1:12345",
			expected:   "203.0.113.8",
		},
		{
			name:       "falls back to remote address",
			headers:    map[string]string{},
			remoteAddr: "203.0.113.9:12345",
			expected:   "203.0.113.9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tc.remoteAddr
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			assert.Equal(t, tc.expected, getIP(c))
		})
	}
}

func TestVisitorExpiry(t *testing.T) {
	resetVisitors(5, 10)

	mu.Lock()
	visitors["stale"] = &visitor{lastSeen: time.Now().Add(-5 * time.Minute)}
	visitors["fresh"] = &visitor{lastSeen: time.Now()}
	for ip, v := range visitors {
		if time.Since(v.lastSeen) > 3*time.Minute {
			delete(visitors, ip)
		}
	}
	_, staleExists := visitors["stale"]
	_, freshExists := visitors["fresh"]
	mu.Unlock()

	assert.False(t, staleExists, "expired visitors must be dropped")
	assert.True(t, freshExists, "active visitors must survive cleanup")
}
