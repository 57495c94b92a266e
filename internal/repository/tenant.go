package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string    // The field to sort by (API field name)
	Order SortOrder // asc or desc
}

// DefaultSortConfig returns the default ordering: the listing's natural
// timestamp column (the empty field falls through the whitelist), newest
// first.
func DefaultSortConfig() SortConfig {
	return SortConfig{Order: SortOrderDesc}
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause builds the SQL ORDER BY clause from field mapping and sort config
// fieldMap maps API field names to database column names
// Returns the default sort if field is not in whitelist
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if config.Order == SortOrderAsc {
		order = "ASC"
	}

	return column + " " + order
}

// ApplyTenantFilter applies the multi-tenant filter to a GORM query
// This should be called on queries that need to be filtered by tenant_id
// If no filter is set (system caller with access to all tenants), the query is returned unchanged
func ApplyTenantFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	tenantID := auth.GetEffectiveTenantFilter(ctx)
	if tenantID != nil {
		return query.Where("tenant_id = ?", *tenantID)
	}
	return query
}

// TenantRepository reads tenant records
type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&tenants).Error
	return tenants, err
}
