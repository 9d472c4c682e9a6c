package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/domain/till"
	"github.com/gympos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormShiftRepository implements ShiftRepository using GORM
type GormShiftRepository struct {
	db *gorm.DB
}

// NewGormShiftRepository creates a new GormShiftRepository
func NewGormShiftRepository(db *gorm.DB) *GormShiftRepository {
	return &GormShiftRepository{db: db}
}

// FindByID finds a shift by its ID
func (r *GormShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*till.Shift, error) {
	var model models.ShiftModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByOperator finds the operator's currently open shift
func (r *GormShiftRepository) FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*till.Shift, error) {
	var model models.ShiftModel
	if err := r.db.WithContext(ctx).
		Where("operator_id = ? AND closed = ?", operatorID, false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOperator finds shifts for an operator matching the filter
func (r *GormShiftRepository) FindByOperator(ctx context.Context, operatorID uuid.UUID, filter shared.Filter) ([]till.Shift, error) {
	var shiftModels []models.ShiftModel
	query := r.db.WithContext(ctx).Model(&models.ShiftModel{}).
		Where("operator_id = ?", operatorID)

	for key, value := range filter.Filters {
		switch key {
		case "closed":
			query = query.Where("closed = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ShiftSortFields, "opened_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&shiftModels).Error; err != nil {
		return nil, err
	}

	shifts := make([]till.Shift, len(shiftModels))
	for i, model := range shiftModels {
		shifts[i] = *model.ToDomain()
	}
	return shifts, nil
}

// Create inserts a new shift. The partial unique index on open shifts
// per operator turns a concurrent duplicate insert into
// shared.ErrAlreadyExists, so callers can refetch the winner.
func (r *GormShiftRepository) Create(ctx context.Context, shift *till.Shift) error {
	var model models.ShiftModel
	model.FromDomain(shift)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// AddCashSale increments the running totals of an open shift in place.
// Both columns move in one statement, so expected cash never drifts
// from opening amount plus accumulated sales.
func (r *GormShiftRepository) AddCashSale(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShiftModel{}).
		Where("id = ? AND closed = ?", shiftID, false).
		Updates(map[string]interface{}{
			"cash_sales_total": gorm.Expr("cash_sales_total + ?", amount),
			"expected_amount":  gorm.Expr("expected_amount + ?", amount),
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Close writes the settlement fields guarded by closed = false in the
// same statement. Zero rows matched means another invocation closed the
// shift first; the caller must not reapply the closure.
func (r *GormShiftRepository) Close(ctx context.Context, shift *till.Shift) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShiftModel{}).
		Where("id = ? AND closed = ?", shift.ID, false).
		Updates(map[string]interface{}{
			"closed":         true,
			"counted_amount": shift.CountedAmount,
			"variance":       shift.Variance,
			"closed_at":      shift.ClosedAt,
			"notes":          shift.Notes,
			"updated_at":     shift.UpdatedAt,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Ensure GormShiftRepository implements ShiftRepository
var _ till.ShiftRepository = (*GormShiftRepository)(nil)
