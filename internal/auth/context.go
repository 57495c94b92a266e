package auth

import (
	"context"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
	Role        string
	TenantID    string
}

type contextKey string

const userContextKey contextKey = "userContext"
const tenantFilterKey contextKey = "tenantFilter"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// IsAdmin reports whether the user's portal role is in the admin family
func (u *UserContext) IsAdmin() bool {
	return audience.Classify(u.Role) == audience.FamilyAdmin
}

// IsSystem reports whether this request was authenticated via API key
func (u *UserContext) IsSystem() bool {
	return u.UserID == SystemUserID
}

// GetTenantFilter returns the tenant ID to filter queries by.
// System callers may roam across tenants; everyone else is pinned to their own.
func (u *UserContext) GetTenantFilter() *string {
	if u.IsSystem() && u.TenantID == "" {
		return nil
	}
	tenantID := u.TenantID
	return &tenantID
}

// TenantFilter represents the effective tenant filter for queries
// This is set by middleware based on user context and query parameters
type TenantFilter struct {
	// TenantID is the tenant to filter by (nil means no filter / all tenants)
	TenantID *string
	// RequestedBySystem indicates a system caller explicitly selected a tenant
	RequestedBySystem bool
}

// WithTenantFilter adds tenant filter to the context
func WithTenantFilter(ctx context.Context, filter *TenantFilter) context.Context {
	return context.WithValue(ctx, tenantFilterKey, filter)
}

// TenantFilterFromContext extracts tenant filter from the context
func TenantFilterFromContext(ctx context.Context) (*TenantFilter, bool) {
	filter, ok := ctx.Value(tenantFilterKey).(*TenantFilter)
	return filter, ok
}

// GetEffectiveTenantFilter returns the tenant ID to filter queries by.
// This should be used by repositories to apply multi-tenant filtering.
// Returns nil if no filtering should be applied.
func GetEffectiveTenantFilter(ctx context.Context) *string {
	if filter, ok := TenantFilterFromContext(ctx); ok && filter != nil {
		return filter.TenantID
	}

	if userCtx, ok := FromContext(ctx); ok {
		return userCtx.GetTenantFilter()
	}

	return nil
}
