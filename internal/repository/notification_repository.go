package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notification domain.Notification
	query := r.db.WithContext(ctx).Preload("Receipts").Where("id = ?", id)
	query = ApplyTenantFilter(ctx, query)
	err := query.First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// List returns sent notifications newest first with receipts preloaded.
// Only the date window is pushed to SQL; sender and recipient predicates
// need roster context and are applied by the service layer.
func (r *NotificationRepository) List(ctx context.Context, from, to *time.Time) ([]domain.Notification, error) {
	var notifications []domain.Notification

	query := r.db.WithContext(ctx).Model(&domain.Notification{}).Preload("Receipts")
	query = ApplyTenantFilter(ctx, query)

	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}

	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MarkRead records a recipient's read acknowledgement, creating the receipt
// row on first contact. A later read never clears an earlier one.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID uuid.UUID, userID string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var receipt domain.NotificationReceipt
		err := tx.Where("notification_id = ? AND user_id = ?", notificationID, userID).First(&receipt).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&domain.NotificationReceipt{
				NotificationID: notificationID,
				UserID:         userID,
				ReadAt:         &now,
			}).Error
		}
		if err != nil {
			return err
		}
		if receipt.ReadAt != nil {
			return nil
		}
		return tx.Model(&receipt).Update("read_at", now).Error
	})
}

// MarkActioned records a recipient's action acknowledgement. An action
// implies a read, so ReadAt is backfilled when missing.
func (r *NotificationRepository) MarkActioned(ctx context.Context, notificationID uuid.UUID, userID string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var receipt domain.NotificationReceipt
		err := tx.Where("notification_id = ? AND user_id = ?", notificationID, userID).First(&receipt).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&domain.NotificationReceipt{
				NotificationID: notificationID,
				UserID:         userID,
				ReadAt:         &now,
				ActionedAt:     &now,
			}).Error
		}
		if err != nil {
			return err
		}
		updates := map[string]interface{}{}
		if receipt.ReadAt == nil {
			updates["read_at"] = now
		}
		if receipt.ActionedAt == nil {
			updates["actioned_at"] = now
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&receipt).Updates(updates).Error
	})
}

// SetCompleted stamps the tenant-wide completion timestamp once
func (r *NotificationRepository) SetCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND completed_at IS NULL", id).
		Update("completed_at", at).Error
}
