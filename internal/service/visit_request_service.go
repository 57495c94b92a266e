package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/mapper"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/repository"
)

// VisitRequestService handles the off-route request decision flow
type VisitRequestService struct {
	requestRepo      *repository.VisitRequestRepository
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	logger           *zap.Logger
}

// NewVisitRequestService creates a new VisitRequestService instance
func NewVisitRequestService(
	requestRepo *repository.VisitRequestRepository,
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *VisitRequestService {
	return &VisitRequestService{
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// waitTime renders the request's wait: the stamped figure for decided rows,
// a live figure against now for pending ones.
func waitTime(request *domain.VisitRequest, now time.Time) string {
	if request.WaitSeconds != nil {
		return reporting.FormatDelta(*request.WaitSeconds)
	}
	return reporting.FormatDelta(reporting.DeltaSeconds(now, request.RequestedAt))
}

// List returns off-route requests with derived wait times
func (s *VisitRequestService) List(ctx context.Context, filter repository.VisitRequestListFilter, sort repository.SortConfig, page, pageSize int) (*domain.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}

	requests, total, err := s.requestRepo.List(ctx, filter, sort, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list visit requests: %w", err)
	}

	_, byID, err := loadRosterIndex(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dtos := make([]domain.VisitRequestDTO, 0, len(requests))
	for i := range requests {
		request := &requests[i]
		name, roleLabel := displayNameOrID(byID, request.RequesterID)
		dtos = append(dtos, mapper.ToVisitRequestDTO(request, name, roleLabel, waitTime(request, now)))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Approve decides a pending request positively
func (s *VisitRequestService) Approve(ctx context.Context, id uuid.UUID, note string) (*domain.VisitRequestDTO, error) {
	return s.decide(ctx, id, domain.RequestApproved, note)
}

// Reject decides a pending request negatively
func (s *VisitRequestService) Reject(ctx context.Context, id uuid.UUID, note string) (*domain.VisitRequestDTO, error) {
	return s.decide(ctx, id, domain.RequestRejected, note)
}

// decide transitions a pending request and notifies the requester.
// Only pending rows may be decided; a decided row stays decided.
func (s *VisitRequestService) decide(ctx context.Context, id uuid.UUID, status domain.VisitRequestStatus, note string) (*domain.VisitRequestDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load visit request: %w", err)
	}

	if request.Status != domain.RequestPending {
		return nil, ErrRequestNotPending
	}

	now := time.Now().UTC()
	waitSeconds := reporting.DeltaSeconds(now, request.RequestedAt)

	decided, err := s.requestRepo.Decide(ctx, id, status, userCtx.UserID, note, now, waitSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to decide visit request: %w", err)
	}
	if !decided {
		// Lost the race against another decision
		return nil, ErrRequestNotPending
	}

	s.logger.Info("visit request decided",
		zap.String("requestID", id.String()),
		zap.String("status", string(status)),
		zap.String("decidedBy", userCtx.UserID),
		zap.Int64("waitSeconds", waitSeconds),
	)

	s.notifyRequester(ctx, request, status)

	request, err = s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload visit request: %w", err)
	}

	_, byID, err := loadRosterIndex(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	name, roleLabel := displayNameOrID(byID, request.RequesterID)
	dto := mapper.ToVisitRequestDTO(request, name, roleLabel, waitTime(request, now))
	return &dto, nil
}

// notifyRequester sends the requester a decision notification.
// Delivery is best effort; a failed notification never rolls back the
// decision itself.
func (s *VisitRequestService) notifyRequester(ctx context.Context, request *domain.VisitRequest, status domain.VisitRequestStatus) {
	titleEn, titleAr := "Visit request approved", "تمت الموافقة على طلب الزيارة"
	messageEn := fmt.Sprintf("Your visit request for %s has been approved.", requestPlace(request))
	messageAr := fmt.Sprintf("تمت الموافقة على طلب زيارتك لـ %s.", requestPlace(request))
	if status == domain.RequestRejected {
		titleEn, titleAr = "Visit request rejected", "تم رفض طلب الزيارة"
		messageEn = fmt.Sprintf("Your visit request for %s has been rejected.", requestPlace(request))
		messageAr = fmt.Sprintf("تم رفض طلب زيارتك لـ %s.", requestPlace(request))
	}

	requesterID := request.RequesterID
	notification := &domain.Notification{
		TenantID:     request.TenantID,
		TargetUserID: &requesterID,
		TitleEn:      titleEn,
		TitleAr:      titleAr,
		MessageEn:    messageEn,
		MessageAr:    messageAr,
		AudienceSize: 1,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to notify requester of decision",
			zap.String("requestID", request.ID.String()),
			zap.String("requesterID", request.RequesterID),
			zap.Error(err),
		)
	}
}

// requestPlace names the requested destination for the decision message
func requestPlace(request *domain.VisitRequest) string {
	switch {
	case request.Store != "":
		return request.Store
	case request.MarketID != "":
		return request.MarketID
	case request.City != "":
		return request.City
	default:
		return "the requested market"
	}
}
