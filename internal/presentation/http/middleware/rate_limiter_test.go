package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestUserRateLimiterSeparatesUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewUserRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	alice, bob := uuid.New(), uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		switch c.GetHeader("X-User") {
		case "alice":
			c.Set("user_id", alice)
		case "bob":
			c.Set("user_id", bob)
		}
		c.Next()
	})
	router.Use(rl.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := hit("alice"); code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, code)
		}
	}
	if code := hit("alice"); code != http.StatusTooManyRequests {
		t.Errorf("over burst: status %d, want 429", code)
	}
	if code := hit("bob"); code != http.StatusOK {
		t.Errorf("other user: status %d", code)
	}
	if code := hit(""); code != http.StatusOK {
		t.Errorf("anonymous: status %d", code)
	}
}

func TestUserRateLimiterCleanup(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: -1})
	rl.getLimiter("ip:10.0.0.1")
	rl.cleanup()
	if len(rl.limiters) != 0 {
		t.Errorf("limiters = %d after cleanup", len(rl.limiters))
	}
}
