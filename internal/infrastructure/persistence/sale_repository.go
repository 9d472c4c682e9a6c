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

// GormDigitalSaleRepository implements DigitalSaleRepository using GORM
type GormDigitalSaleRepository struct {
	db *gorm.DB
}

// NewGormDigitalSaleRepository creates a new GormDigitalSaleRepository
func NewGormDigitalSaleRepository(db *gorm.DB) *GormDigitalSaleRepository {
	return &GormDigitalSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormDigitalSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.DigitalSale, error) {
	var model models.DigitalSaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDDirect finds a sale by ID with a raw statement, bypassing the
// model query builder. The resolver's second tier uses it to re-check a
// miss from FindByID before falling back to the member's latest sale.
func (r *GormDigitalSaleRepository) FindByIDDirect(ctx context.Context, id uuid.UUID) (*membership.DigitalSale, error) {
	var model models.DigitalSaleModel
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM digital_sales WHERE id = ? LIMIT 1", id).
		Scan(&model).Error
	if err != nil {
		return nil, err
	}
	if model.ID == uuid.Nil {
		return nil, shared.ErrNotFound
	}
	return model.ToDomain(), nil
}

// FindLatestUnsettledByMember returns the member's most recently
// purchased sale that is not yet active
func (r *GormDigitalSaleRepository) FindLatestUnsettledByMember(ctx context.Context, memberID uuid.UUID) (*membership.DigitalSale, error) {
	var model models.DigitalSaleModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND status <> ?", memberID, membership.SaleStatusActive).
		Order("purchased_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMember finds sales for a member matching the filter
func (r *GormDigitalSaleRepository) FindByMember(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]membership.DigitalSale, error) {
	var saleModels []models.DigitalSaleModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DigitalSaleModel{}).
			Where("member_id = ?", memberID),
		filter,
	)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]membership.DigitalSale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// Save creates or updates a sale
func (r *GormDigitalSaleRepository) Save(ctx context.Context, sale *membership.DigitalSale) error {
	var model models.DigitalSaleModel
	model.FromDomain(sale)
	return r.db.WithContext(ctx).Save(&model).Error
}

// applyFilter applies filter options to the query
func (r *GormDigitalSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("payment_reference ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "purchased_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormDigitalSaleRepository implements DigitalSaleRepository
var _ membership.DigitalSaleRepository = (*GormDigitalSaleRepository)(nil)
