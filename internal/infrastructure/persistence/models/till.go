package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/till"
	"github.com/shopspring/decimal"
)

// ShiftModel is the persistence model for the cash drawer Shift aggregate.
// An operator can have at most one open shift at a time, enforced by a
// partial unique index on operator_id while closed = false.
type ShiftModel struct {
	AggregateModel
	OperatorID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_shifts_open_operator,where:closed = false"`
	OpenedAt       time.Time        `gorm:"not null;index"`
	OpeningAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CashSalesTotal decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CountedAmount  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Variance       *decimal.Decimal `gorm:"type:decimal(18,4)"`
	ClosedAt       *time.Time       `gorm:"index"`
	Closed         bool             `gorm:"not null;default:false;index"`
	Notes          string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ShiftModel) TableName() string {
	return "shifts"
}

// ToDomain converts the persistence model to a domain Shift entity.
func (m *ShiftModel) ToDomain() *till.Shift {
	s := &till.Shift{
		OperatorID:     m.OperatorID,
		OpenedAt:       m.OpenedAt,
		OpeningAmount:  m.OpeningAmount,
		CashSalesTotal: m.CashSalesTotal,
		ExpectedAmount: m.ExpectedAmount,
		CountedAmount:  m.CountedAmount,
		Variance:       m.Variance,
		ClosedAt:       m.ClosedAt,
		Closed:         m.Closed,
		Notes:          m.Notes,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Shift entity.
func (m *ShiftModel) FromDomain(s *till.Shift) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.OperatorID = s.OperatorID
	m.OpenedAt = s.OpenedAt
	m.OpeningAmount = s.OpeningAmount
	m.CashSalesTotal = s.CashSalesTotal
	m.ExpectedAmount = s.ExpectedAmount
	m.CountedAmount = s.CountedAmount
	m.Variance = s.Variance
	m.ClosedAt = s.ClosedAt
	m.Closed = s.Closed
	m.Notes = s.Notes
}
