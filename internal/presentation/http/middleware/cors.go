package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/config"
)

// Development origins of the mobile client (Expo dev server and web build).
var defaultOrigins = []string{
	"http://localhost:8081",
	"http://localhost:19006",
	"http://127.0.0.1:8081",
}

var defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

// Request headers the API reads; always allowed whatever is configured.
var requiredRequestHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"Origin",
	"X-Request-ID",
	IdempotencyKeyHeader,
}

// Response headers the client reads: the download name of a stored PDF,
// the replay flag of a retried save and the rate limit state.
var exposedHeaders = []string{
	"Content-Length",
	"Content-Type",
	"Content-Disposition",
	"X-Request-ID",
	IdempotencyReplayedHeader,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"Retry-After",
}

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     withRequired(cfg.AllowedHeaders, requiredRequestHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

// withRequired appends every required header missing from configured.
func withRequired(configured, required []string) []string {
	out := append([]string(nil), configured...)
	seen := make(map[string]bool, len(out))
	for _, h := range out {
		seen[http.CanonicalHeaderKey(h)] = true
	}
	for _, h := range required {
		if !seen[http.CanonicalHeaderKey(h)] {
			out = append(out, h)
		}
	}
	return out
}
