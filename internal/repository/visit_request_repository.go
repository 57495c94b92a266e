package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
)

// VisitRequestListFilter narrows the off-route request listing.
// Unlike visit report status, request status is stored, so every predicate
// here is pushed to SQL.
type VisitRequestListFilter struct {
	Status      domain.VisitRequestStatus
	RequesterID string
	Region      string
	City        string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// visitRequestSortFields whitelists the API sort fields for the request
// listing. Fields outside the map fall back to the default column.
var visitRequestSortFields = map[string]string{
	"requestedAt": "requested_at",
	"decidedAt":   "decided_at",
	"status":      "status",
	"region":      "region",
	"city":        "city",
	"waitSeconds": "wait_seconds",
}

type VisitRequestRepository struct {
	db *gorm.DB
}

func NewVisitRequestRepository(db *gorm.DB) *VisitRequestRepository {
	return &VisitRequestRepository{db: db}
}

func (r *VisitRequestRepository) Create(ctx context.Context, request *domain.VisitRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *VisitRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VisitRequest, error) {
	var request domain.VisitRequest
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyTenantFilter(ctx, query)
	err := query.First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *VisitRequestRepository) List(ctx context.Context, filter VisitRequestListFilter, sort SortConfig, page, pageSize int) ([]domain.VisitRequest, int64, error) {
	var requests []domain.VisitRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.VisitRequest{})
	query = ApplyTenantFilter(ctx, query)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RequesterID != "" {
		query = query.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.Region != "" {
		query = query.Where("LOWER(region) = LOWER(?)", filter.Region)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.DateFrom != nil {
		query = query.Where("requested_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("requested_at < ?", *filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	orderClause := BuildOrderClause(sort, visitRequestSortFields, "requested_at")
	err := query.Offset(offset).Limit(pageSize).Order(orderClause).Find(&requests).Error

	return requests, total, err
}

// Decide transitions a pending request to approved or rejected.
// The WHERE guard on status makes the transition race-safe: a request that
// is no longer pending matches zero rows and the caller sees a conflict.
func (r *VisitRequestRepository) Decide(
	ctx context.Context,
	id uuid.UUID,
	status domain.VisitRequestStatus,
	decidedByID string,
	note string,
	decidedAt time.Time,
	waitSeconds int64,
) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.VisitRequest{}).
		Where("id = ? AND status = ?", id, domain.RequestPending).
		Updates(map[string]interface{}{
			"status":        status,
			"decided_by_id": decidedByID,
			"decision_note": note,
			"decided_at":    decidedAt,
			"wait_seconds":  waitSeconds,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
