package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntitlementRepository implements EntitlementRepository using GORM
type GormEntitlementRepository struct {
	db *gorm.DB
}

// NewGormEntitlementRepository creates a new GormEntitlementRepository
func NewGormEntitlementRepository(db *gorm.DB) *GormEntitlementRepository {
	return &GormEntitlementRepository{db: db}
}

// FindByID finds an entitlement by its ID
func (r *GormEntitlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Entitlement, error) {
	var model models.EntitlementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByMember finds active, uncancelled entitlements for a member
func (r *GormEntitlementRepository) FindActiveByMember(ctx context.Context, memberID uuid.UUID) ([]membership.Entitlement, error) {
	var entitlementModels []models.EntitlementModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND active = ? AND cancelled = ?", memberID, true, false).
		Order("end_date DESC").
		Find(&entitlementModels).Error; err != nil {
		return nil, err
	}

	entitlements := make([]membership.Entitlement, len(entitlementModels))
	for i, model := range entitlementModels {
		entitlements[i] = *model.ToDomain()
	}
	return entitlements, nil
}

// Save creates or updates an entitlement
func (r *GormEntitlementRepository) Save(ctx context.Context, entitlement *membership.Entitlement) error {
	var model models.EntitlementModel
	model.FromDomain(entitlement)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormEntitlementRepository implements EntitlementRepository
var _ membership.EntitlementRepository = (*GormEntitlementRepository)(nil)
