package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentNotificationRepository implements PaymentNotificationRepository using GORM
type GormPaymentNotificationRepository struct {
	db *gorm.DB
}

// NewGormPaymentNotificationRepository creates a new GormPaymentNotificationRepository
func NewGormPaymentNotificationRepository(db *gorm.DB) *GormPaymentNotificationRepository {
	return &GormPaymentNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormPaymentNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.PaymentNotification, error) {
	var model models.PaymentNotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPaymentCode finds an unanswered notification by its payment code
func (r *GormPaymentNotificationRepository) FindByPaymentCode(ctx context.Context, code string) (*membership.PaymentNotification, error) {
	var model models.PaymentNotificationModel
	if err := r.db.WithContext(ctx).
		Where("payment_code = ? AND answered = ?", strings.ToUpper(code), false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingByMember finds unanswered notifications for a member
func (r *GormPaymentNotificationRepository) FindPendingByMember(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]membership.PaymentNotification, error) {
	var notificationModels []models.PaymentNotificationModel
	query := r.db.WithContext(ctx).Model(&models.PaymentNotificationModel{}).
		Where("member_id = ? AND answered = ?", memberID, false).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]membership.PaymentNotification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// MarkAnswered resolves the notification with a single conditional
// update guarded by answered = false. RowsAffected tells the caller
// whether this invocation won; a concurrent resolution leaves zero rows
// matched and the caller must treat the work as already done.
func (r *GormPaymentNotificationRepository) MarkAnswered(ctx context.Context, notification *membership.PaymentNotification) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentNotificationModel{}).
		Where("id = ? AND answered = ?", notification.ID, false).
		Updates(map[string]interface{}{
			"answered":    true,
			"read":        true,
			"resolved_at": notification.ResolvedAt,
			"updated_at":  notification.UpdatedAt,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Save creates or updates a notification
func (r *GormPaymentNotificationRepository) Save(ctx context.Context, notification *membership.PaymentNotification) error {
	var model models.PaymentNotificationModel
	model.FromDomain(notification)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormPaymentNotificationRepository implements PaymentNotificationRepository
var _ membership.PaymentNotificationRepository = (*GormPaymentNotificationRepository)(nil)
