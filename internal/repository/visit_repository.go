package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// ListForDate returns the snapshot rows for one calendar day.
// Attribute filters run in the service layer because the report status is
// derived, never stored.
func (r *VisitRepository) ListForDate(ctx context.Context, day time.Time) ([]domain.Visit, error) {
	var visits []domain.Visit

	query := r.db.WithContext(ctx).Model(&domain.Visit{}).
		Where("snapshot_date = ?", day.Format("2006-01-02"))
	query = ApplyTenantFilter(ctx, query)

	err := query.Order("started_at ASC").Find(&visits).Error
	return visits, err
}

// ListForDateTenant is ListForDate pinned to an explicit tenant, used by the
// warmup job which runs outside any request context.
func (r *VisitRepository) ListForDateTenant(ctx context.Context, tenantID string, day time.Time) ([]domain.Visit, error) {
	var visits []domain.Visit

	err := r.db.WithContext(ctx).Model(&domain.Visit{}).
		Where("tenant_id = ? AND snapshot_date = ?", tenantID, day.Format("2006-01-02")).
		Order("started_at ASC").
		Find(&visits).Error
	return visits, err
}
