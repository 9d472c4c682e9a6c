package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntryLogRepository implements EntryLogRepository using GORM.
// The log is append-only: records are created and read, never updated.
type GormEntryLogRepository struct {
	db *gorm.DB
}

// NewGormEntryLogRepository creates a new GormEntryLogRepository
func NewGormEntryLogRepository(db *gorm.DB) *GormEntryLogRepository {
	return &GormEntryLogRepository{db: db}
}

// Append writes one access event
func (r *GormEntryLogRepository) Append(ctx context.Context, record *membership.EntryLogRecord) error {
	var model models.EntryLogModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByMember finds access events for a member matching the filter
func (r *GormEntryLogRepository) FindByMember(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]membership.EntryLogRecord, error) {
	var logModels []models.EntryLogModel
	query := r.db.WithContext(ctx).Model(&models.EntryLogModel{}).
		Where("member_id = ?", memberID).
		Order("occurred_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	records := make([]membership.EntryLogRecord, len(logModels))
	for i, model := range logModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Ensure GormEntryLogRepository implements EntryLogRepository
var _ membership.EntryLogRepository = (*GormEntryLogRepository)(nil)
