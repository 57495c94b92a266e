package auth_test

import (
	"context"
	"testing"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext_IsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected bool
	}{
		{name: "super admin", role: "super_admin", expected: true},
		{name: "plain admin", role: "Admin", expected: true},
		{name: "compound admin role", role: "tenant-admin", expected: true},
		{name: "promoter", role: "promoter", expected: false},
		{name: "team leader", role: "team_leader", expected: false},
		{name: "empty role", role: "", expected: false},
		{name: "unknown role", role: "supervisor", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userCtx := &auth.UserContext{Role: tt.role}
			assert.Equal(t, tt.expected, userCtx.IsAdmin())
		})
	}
}

func TestUserContext_IsSystem(t *testing.T) {
	assert.True(t, (&auth.UserContext{UserID: auth.SystemUserID}).IsSystem())
	assert.False(t, (&auth.UserContext{UserID: "user-1"}).IsSystem())
}

func TestUserContext_GetTenantFilter(t *testing.T) {
	t.Run("regular user is pinned to their tenant", func(t *testing.T) {
		userCtx := &auth.UserContext{UserID: "user-1", TenantID: "acme"}
		filter := userCtx.GetTenantFilter()
		require.NotNil(t, filter)
		assert.Equal(t, "acme", *filter)
	})

	t.Run("system caller without tenant roams", func(t *testing.T) {
		userCtx := &auth.UserContext{UserID: auth.SystemUserID}
		assert.Nil(t, userCtx.GetTenantFilter())
	})

	t.Run("system caller with tenant is scoped", func(t *testing.T) {
		userCtx := &auth.UserContext{UserID: auth.SystemUserID, TenantID: "acme"}
		filter := userCtx.GetTenantFilter()
		require.NotNil(t, filter)
		assert.Equal(t, "acme", *filter)
	})
}

func TestUserContext_RoundTrip(t *testing.T) {
	userCtx := &auth.UserContext{UserID: "user-1", TenantID: "acme", Role: "promoter"}
	ctx := auth.WithUserContext(context.Background(), userCtx)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userCtx, got)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestGetEffectiveTenantFilter(t *testing.T) {
	t.Run("no context", func(t *testing.T) {
		assert.Nil(t, auth.GetEffectiveTenantFilter(context.Background()))
	})

	t.Run("tenant filter takes precedence over user context", func(t *testing.T) {
		tenantID := "selected"
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: "user-1", TenantID: "own"})
		ctx = auth.WithTenantFilter(ctx, &auth.TenantFilter{TenantID: &tenantID})

		got := auth.GetEffectiveTenantFilter(ctx)
		require.NotNil(t, got)
		assert.Equal(t, "selected", *got)
	})

	t.Run("falls back to user context when no filter set", func(t *testing.T) {
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: "user-1", TenantID: "own"})

		got := auth.GetEffectiveTenantFilter(ctx)
		require.NotNil(t, got)
		assert.Equal(t, "own", *got)
	})

	t.Run("nil tenant in filter means unscoped", func(t *testing.T) {
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: auth.SystemUserID})
		ctx = auth.WithTenantFilter(ctx, &auth.TenantFilter{RequestedBySystem: true})

		assert.Nil(t, auth.GetEffectiveTenantFilter(ctx))
	})
}
