package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"driverpay/internal/config"
)

func TestOriginAllowed(t *testing.T) {
	allowed := OriginAllowed(config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:5173/"},
		OriginPatterns: []string{"https://driver-payment-system*.vercel.app"},
	})

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"http://localhost:3000", false},
		{"https://driver-payment-system.vercel.app", true},
		{"https://driver-payment-system-abc123-team.vercel.app", true},
		{"https://driver-payment-system.vercel.app.evil.com", false},
		{"https://other.vercel.app", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, allowed(tt.origin), tt.origin)
	}
}

func TestMatchPattern_WithoutWildcard(t *testing.T) {
	assert.True(t, matchPattern("https://a.example.com", "https://a.example.com"))
	assert.False(t, matchPattern("https://a.example.com", "https://b.example.com"))
}
