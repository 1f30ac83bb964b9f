package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"driverpay/internal/config"
)

// CORS allows the configured dashboard origins. Requests without an Origin
// header are not affected.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  OriginAllowed(cfg),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", CorrelationIDHeader, idempotencyHeader},
		ExposeHeaders:    []string{CorrelationIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// OriginAllowed returns a matcher for exact origins and single-wildcard patterns.
func OriginAllowed(cfg config.CORSConfig) func(origin string) bool {
	exact := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		exact[strings.TrimRight(o, "/")] = struct{}{}
	}
	patterns := append([]string(nil), cfg.OriginPatterns...)

	return func(origin string) bool {
		if _, ok := exact[origin]; ok {
			return true
		}
		for _, p := range patterns {
			if matchPattern(p, origin) {
				return true
			}
		}
		return false
	}
}

func matchPattern(pattern, origin string) bool {
	prefix, suffix, found := strings.Cut(pattern, "*")
	if !found {
		return pattern == origin
	}
	return len(origin) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(origin, prefix) &&
		strings.HasSuffix(origin, suffix)
}
