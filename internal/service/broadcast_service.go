package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/mapper"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/repository"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/storage"
)

// AttachmentUpload carries an optional file sent with a broadcast
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// BroadcastService handles composing, sending and analysing broadcasts
type BroadcastService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	storage          storage.Storage
	logger           *zap.Logger
}

// NewBroadcastService creates a new BroadcastService instance
func NewBroadcastService(
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	storage storage.Storage,
	logger *zap.Logger,
) *BroadcastService {
	return &BroadcastService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		storage:          storage,
		logger:           logger,
	}
}

// targetSpecOf rebuilds the resolver input from a stored notification
func targetSpecOf(n *domain.Notification) audience.TargetSpec {
	spec := audience.TargetSpec{
		UserIDs: n.TargetUserIDs,
		Roles:   n.TargetRoles,
		ForAll:  n.ForAll,
	}
	if n.TargetUserID != nil {
		spec.UserID = *n.TargetUserID
	}
	return spec
}

// ackIDs returns the user ids that acknowledged the broadcast, via read or action
func ackIDs(receipts []domain.NotificationReceipt) []string {
	ids := make([]string, 0, len(receipts))
	for _, r := range receipts {
		if r.ReadAt != nil || r.ActionedAt != nil {
			ids = append(ids, r.UserID)
		}
	}
	return ids
}

// Send composes and sends a broadcast. The audience is resolved against the
// current roster with admins excluded from role and for-all expansion; the
// resolved size is persisted so later analytics do not drift when the
// roster changes.
func (s *BroadcastService) Send(ctx context.Context, req *domain.SendBroadcastRequest, attachment *AttachmentUpload) (*domain.BroadcastDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	roster, _, err := loadRosterIndex(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	spec := audience.TargetSpec{
		UserIDs: req.TargetUserIDs,
		Roles:   req.TargetRoles,
		ForAll:  req.ForAll,
	}

	resolved := audience.Resolve(spec, roster, audience.ExcludeAdmins())
	if len(resolved) == 0 {
		return nil, ErrEmptyAudience
	}

	notification := &domain.Notification{
		TenantID:     userCtx.TenantID,
		TitleEn:      req.TitleEn,
		TitleAr:      req.TitleAr,
		MessageEn:    req.MessageEn,
		MessageAr:    req.MessageAr,
		ForAll:       req.ForAll,
		AudienceSize: len(resolved),
	}
	if len(req.TargetUserIDs) > 0 {
		notification.TargetUserIDs = pq.StringArray(audience.NormalizeIDs(req.TargetUserIDs))
	}
	if len(req.TargetRoles) > 0 {
		notification.TargetRoles = pq.StringArray(req.TargetRoles)
	}
	if !userCtx.IsSystem() {
		senderID := userCtx.UserID
		notification.SenderID = &senderID
	}

	if attachment != nil {
		storagePath, size, err := s.storage.Upload(ctx, userCtx.TenantID, attachment.Filename, attachment.ContentType, attachment.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		notification.AttachmentPath = storagePath

		s.logger.Info("broadcast attachment stored",
			zap.String("path", storagePath),
			zap.Int64("size", size),
		)
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		if notification.AttachmentPath != "" {
			_ = s.storage.Delete(ctx, notification.AttachmentPath)
		}
		return nil, fmt.Errorf("failed to create broadcast: %w", err)
	}

	s.logger.Info("broadcast sent",
		zap.String("broadcastID", notification.ID.String()),
		zap.String("tenantID", notification.TenantID),
		zap.String("targetMode", mapper.TargetMode(notification)),
		zap.Int("audienceSize", len(resolved)),
	)

	senderName := userCtx.DisplayName
	completion := reporting.Completion{AudienceSize: len(resolved)}
	dto := mapper.ToBroadcastDTO(notification, senderName, completion, reporting.DeriveDisplayStatus(0, 0), "")
	return &dto, nil
}

// List returns sent broadcasts with derived analytics, newest first.
// All populated filter predicates apply conjunctively.
func (s *BroadcastService) List(ctx context.Context, filter reporting.BroadcastFilter, page, pageSize int) (*domain.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}

	// Inclusive day bounds: push [from, to+1d) to SQL, the rest is in-memory
	var sqlFrom, sqlTo *time.Time
	if filter.DateFrom != nil {
		from := filter.DateFrom.Truncate(24 * time.Hour)
		sqlFrom = &from
	}
	if filter.DateTo != nil {
		to := filter.DateTo.Truncate(24 * time.Hour).Add(24 * time.Hour)
		sqlTo = &to
	}

	notifications, err := s.notificationRepo.List(ctx, sqlFrom, sqlTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list broadcasts: %w", err)
	}

	roster, byID, err := loadRosterIndex(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	byRef := make(map[string]*domain.Notification, len(notifications))
	facts := make([]reporting.BroadcastFacts, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		ref := n.ID.String()
		byRef[ref] = n

		fact := reporting.BroadcastFacts{
			Ref:       ref,
			CreatedAt: n.CreatedAt,
			Target:    targetSpecOf(n),
		}
		if n.SenderID != nil {
			fact.SenderID = *n.SenderID
		}
		for _, r := range n.Receipts {
			if r.ReadAt != nil {
				fact.ReadCount++
			}
			if r.ActionedAt != nil {
				fact.ActionCount++
			}
		}
		facts = append(facts, fact)
	}

	matched := reporting.ApplyBroadcastFilter(facts, filter, roster)

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	dtos := make([]domain.BroadcastDTO, 0, end-start)
	for _, fact := range matched[start:end] {
		n := byRef[fact.Ref]
		dtos = append(dtos, s.toDTO(n, roster, byID))
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

// toDTO derives the analytics columns for one broadcast row
func (s *BroadcastService) toDTO(n *domain.Notification, roster []audience.Member, byID map[string]*domain.User) domain.BroadcastDTO {
	resolved := audience.Resolve(targetSpecOf(n), roster, audience.ExcludeAdmins())
	// The size captured at send time wins over the live roster; churn must
	// not rewrite history or mark a shrunken audience fully done.
	completion := reporting.DeriveCompletion(resolved, ackIDs(n.Receipts)).WithAudienceSize(n.AudienceSize)

	readCount, actionCount := 0, 0
	for _, r := range n.Receipts {
		if r.ReadAt != nil {
			readCount++
		}
		if r.ActionedAt != nil {
			actionCount++
		}
	}

	timeTaken := ""
	if n.CompletedAt != nil {
		timeTaken = reporting.FormatDelta(reporting.DeltaSeconds(*n.CompletedAt, n.CreatedAt))
	}

	senderName := ""
	if n.SenderID != nil {
		senderName, _ = displayNameOrID(byID, *n.SenderID)
	}

	return mapper.ToBroadcastDTO(n, senderName, completion, reporting.DeriveDisplayStatus(readCount, actionCount), timeTaken)
}

// GetDetail returns one broadcast with its per-recipient delivery breakdown
func (s *BroadcastService) GetDetail(ctx context.Context, id uuid.UUID) (*domain.BroadcastDetailDTO, error) {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBroadcastNotFound
		}
		return nil, fmt.Errorf("failed to load broadcast: %w", err)
	}

	roster, byID, err := loadRosterIndex(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	// Recipients are the resolved audience plus anyone with a receipt;
	// historical receipts survive retargeting and roster churn.
	recipientIDs := audience.Resolve(targetSpecOf(n), roster, audience.ExcludeAdmins())
	receiptByUser := make(map[string]*domain.NotificationReceipt, len(n.Receipts))
	for i := range n.Receipts {
		r := &n.Receipts[i]
		uid := audience.NormalizeID(r.UserID)
		receiptByUser[uid] = r
		if _, ok := recipientIDs[uid]; !ok {
			recipientIDs[uid] = struct{}{}
		}
	}

	recipients := make([]domain.RecipientDTO, 0, len(recipientIDs))
	for uid := range recipientIDs {
		name, roleLabel := displayNameOrID(byID, uid)

		readDelta, actionTime := "", ""
		receipt := receiptByUser[uid]
		if receipt == nil {
			receipt = &domain.NotificationReceipt{UserID: uid}
		}
		if receipt.ReadAt != nil {
			readDelta = reporting.FormatDelta(reporting.DeltaSeconds(*receipt.ReadAt, n.CreatedAt))
		}
		if receipt.ActionedAt != nil {
			actionTime = reporting.FormatDelta(reporting.DeltaSeconds(*receipt.ActionedAt, n.CreatedAt))
		}

		recipients = append(recipients, mapper.ToRecipientDTO(receipt, name, roleLabel, readDelta, actionTime))
	}

	sort.Slice(recipients, func(i, j int) bool {
		if recipients[i].Name != recipients[j].Name {
			return recipients[i].Name < recipients[j].Name
		}
		return recipients[i].UserID < recipients[j].UserID
	})

	detail := &domain.BroadcastDetailDTO{
		BroadcastDTO: s.toDTO(n, roster, byID),
		Recipients:   recipients,
	}
	return detail, nil
}

// DownloadAttachment streams a broadcast's stored attachment
func (s *BroadcastService) DownloadAttachment(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBroadcastNotFound
		}
		return nil, "", fmt.Errorf("failed to load broadcast: %w", err)
	}

	if n.AttachmentPath == "" {
		return nil, "", ErrNoAttachment
	}

	reader, err := s.storage.Download(ctx, n.AttachmentPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download attachment: %w", err)
	}

	return reader, n.AttachmentPath, nil
}

// MarkRead records a recipient's read acknowledgement and stamps the
// tenant-wide completion timestamp when the audience is fully done.
func (s *BroadcastService) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	return s.acknowledge(ctx, id, userID, s.notificationRepo.MarkRead)
}

// MarkActioned records a recipient's action acknowledgement
func (s *BroadcastService) MarkActioned(ctx context.Context, id uuid.UUID, userID string) error {
	return s.acknowledge(ctx, id, userID, s.notificationRepo.MarkActioned)
}

func (s *BroadcastService) acknowledge(ctx context.Context, id uuid.UUID, userID string, mark func(context.Context, uuid.UUID, string) error) error {
	uid := audience.NormalizeID(userID)
	if uid == "" {
		return ErrInvalidInput
	}

	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBroadcastNotFound
		}
		return fmt.Errorf("failed to load broadcast: %w", err)
	}

	if err := mark(ctx, id, uid); err != nil {
		return fmt.Errorf("failed to record acknowledgement: %w", err)
	}

	if n.CompletedAt != nil {
		return nil
	}

	// Re-read receipts and check whether this acknowledgement completed the
	// audience.
	n, err = s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload broadcast: %w", err)
	}

	roster, _, err := loadRosterIndex(ctx, s.userRepo)
	if err != nil {
		return err
	}

	resolved := audience.Resolve(targetSpecOf(n), roster, audience.ExcludeAdmins())
	completion := reporting.DeriveCompletion(resolved, ackIDs(n.Receipts)).WithAudienceSize(n.AudienceSize)
	if completion.FullyDone {
		now := time.Now().UTC()
		if err := s.notificationRepo.SetCompleted(ctx, id, now); err != nil {
			return fmt.Errorf("failed to stamp completion: %w", err)
		}
		s.logger.Info("broadcast fully acknowledged",
			zap.String("broadcastID", id.String()),
			zap.Int("audienceSize", completion.AudienceSize),
		)
	}

	return nil
}
