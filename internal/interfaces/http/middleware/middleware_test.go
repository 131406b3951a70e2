package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/infrastructure/auth"
	"github.com/peeves/backend/tests/testutil"
)

func testClaims(admin bool) *auth.Claims {
	return &auth.Claims{
		UserID: testutil.TestUserID().String(),
		Email:  "user@example.com",
		Admin:  admin,
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates request ID when missing", func(t *testing.T) {
		resp := testutil.PerformRequest(t, router, http.MethodGet, "/ping", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
		assert.Equal(t, resp.Header().Get("X-Request-ID"), resp.Body.String())
	})

	t.Run("preserves incoming request ID", func(t *testing.T) {
		resp := testutil.PerformRequestWithHeaders(t, router, http.MethodGet, "/ping", nil,
			map[string]string{"X-Request-ID": "incoming-id"})

		assert.Equal(t, "incoming-id", resp.Header().Get("X-Request-ID"))
		assert.Equal(t, "incoming-id", resp.Body.String())
	})
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://shop.example.com"}

	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		resp := testutil.PerformRequestWithHeaders(t, router, http.MethodGet, "/ping", nil,
			map[string]string{"Origin": "https://shop.example.com"})

		assert.Equal(t, "https://shop.example.com", resp.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		resp := testutil.PerformRequestWithHeaders(t, router, http.MethodGet, "/ping", nil,
			map[string]string{"Origin": "https://evil.example.com"})

		assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("preflight returns 204", func(t *testing.T) {
		resp := testutil.PerformRequestWithHeaders(t, router, http.MethodOptions, "/ping", nil,
			map[string]string{"Origin": "https://shop.example.com"})

		assert.Equal(t, http.StatusNoContent, resp.Code)
		assert.Contains(t, resp.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))

	// Other clients are unaffected
	assert.True(t, limiter.Allow("client-b"))
	assert.Equal(t, 0, limiter.Remaining("client-a"))
	assert.Equal(t, 1, limiter.Remaining("client-b"))
	assert.Equal(t, 2, limiter.Remaining("client-c"))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(NewRateLimiter(1, time.Minute)))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	resp := testutil.PerformRequest(t, router, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "1", resp.Header().Get("X-RateLimit-Limit"))

	resp = testutil.PerformRequest(t, router, http.MethodGet, "/ping", nil)
	resp.AssertError(t, http.StatusTooManyRequests, "ERR_RATE_LIMITED")
}

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(8))
	router.POST("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("small body passes", func(t *testing.T) {
		resp := testutil.PerformRequest(t, router, http.MethodPost, "/echo", "tiny")
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		resp := testutil.PerformRequest(t, router, http.MethodPost, "/echo", "far too large a payload")
		resp.AssertError(t, http.StatusRequestEntityTooLarge, "ERR_REQUEST_TOO_LARGE")
	})
}

func TestSecureHeaders(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	resp := testutil.PerformRequest(t, router, http.MethodGet, "/ping", nil)

	assert.Equal(t, "DENY", resp.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header().Get("Content-Security-Policy"))
	assert.Empty(t, resp.Header().Get("Strict-Transport-Security"))
}

func TestRequireAdmin(t *testing.T) {
	newRouter := func(seed func(c *gin.Context)) *gin.Engine {
		router := gin.New()
		if seed != nil {
			router.Use(func(c *gin.Context) { seed(c); c.Next() })
		}
		router.Use(RequireAdmin())
		router.GET("/admin", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("no claims", func(t *testing.T) {
		resp := testutil.PerformRequest(t, newRouter(nil), http.MethodGet, "/admin", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("non admin", func(t *testing.T) {
		router := newRouter(func(c *gin.Context) {
			c.Set(JWTClaimsKey, testClaims(false))
			c.Set(JWTAdminKey, false)
		})
		resp := testutil.PerformRequest(t, router, http.MethodGet, "/admin", nil)
		resp.AssertError(t, http.StatusForbidden, "ERR_FORBIDDEN")
	})

	t.Run("admin", func(t *testing.T) {
		router := newRouter(func(c *gin.Context) {
			c.Set(JWTClaimsKey, testClaims(true))
			c.Set(JWTAdminKey, true)
		})
		resp := testutil.PerformRequest(t, router, http.MethodGet, "/admin", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
