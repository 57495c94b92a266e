package middleware

import (
	"net/http"
	"strings"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"go.uber.org/zap"
)

// TenantFilterMiddleware pins every request to a tenant. Portal users are
// always scoped to the tenant on their token; system callers may select a
// tenant with ?tenant_id= or roam across all tenants when none is given.
type TenantFilterMiddleware struct {
	logger *zap.Logger
}

// NewTenantFilterMiddleware creates a new tenant filter middleware
func NewTenantFilterMiddleware(logger *zap.Logger) *TenantFilterMiddleware {
	return &TenantFilterMiddleware{
		logger: logger,
	}
}

// Filter resolves the effective tenant for the request and stores it in context
func (m *TenantFilterMiddleware) Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		if !ok || userCtx == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		requested := strings.TrimSpace(r.URL.Query().Get("tenant_id"))

		filter := &auth.TenantFilter{
			RequestedBySystem: userCtx.IsSystem(),
		}

		switch {
		case userCtx.IsSystem():
			// System callers choose their scope; an empty tenant_id means
			// the request runs unscoped across all tenants.
			if requested != "" {
				filter.TenantID = &requested
			}

		case requested != "" && requested != userCtx.TenantID:
			m.logger.Warn("cross-tenant request denied",
				zap.String("user_id", userCtx.UserID),
				zap.String("user_tenant", userCtx.TenantID),
				zap.String("requested_tenant", requested),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, "Forbidden: access to the requested tenant is not allowed", http.StatusForbidden)
			return

		default:
			tenantID := userCtx.TenantID
			if tenantID == "" {
				m.logger.Warn("request without tenant scope denied",
					zap.String("user_id", userCtx.UserID),
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Forbidden: no tenant scope on token", http.StatusForbidden)
				return
			}
			filter.TenantID = &tenantID
		}

		ctx := auth.WithTenantFilter(r.Context(), filter)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
