package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/config"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func serveWithSecurityHeaders(cfg *config.SecurityConfig) *httptest.ResponseRecorder {
	handler := middleware.SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_FullConfig(t *testing.T) {
	w := serveWithSecurityHeaders(&config.SecurityConfig{
		ContentTypeNosniff:    true,
		FrameOptions:          "DENY",
		XSSProtection:         "1; mode=block",
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=(), microphone=(), camera=()", w.Header().Get("Permissions-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "HSTS should not be set when disabled")
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.SecurityConfig
		expected string
	}{
		{
			name:     "max age only",
			cfg:      config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 31536000},
			expected: "max-age=31536000",
		},
		{
			name:     "with subdomains",
			cfg:      config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 31536000, HSTSIncludeSubdomains: true},
			expected: "max-age=31536000; includeSubDomains",
		},
		{
			name:     "with preload",
			cfg:      config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 31536000, HSTSIncludeSubdomains: true, HSTSPreload: true},
			expected: "max-age=31536000; includeSubDomains; preload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithSecurityHeaders(&tt.cfg)
			assert.Equal(t, tt.expected, w.Header().Get("Strict-Transport-Security"))
		})
	}
}

func TestSecurityHeaders_MinimalConfigSetsNothing(t *testing.T) {
	w := serveWithSecurityHeaders(&config.SecurityConfig{})

	for _, header := range []string{
		"X-Content-Type-Options",
		"X-Frame-Options",
		"X-XSS-Protection",
		"Content-Security-Policy",
		"Referrer-Policy",
		"Permissions-Policy",
		"Strict-Transport-Security",
	} {
		assert.Empty(t, w.Header().Get(header), header)
	}
}
