package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/shopspring/decimal"
)

// DigitalSaleModel is the persistence model for the DigitalSale aggregate root.
type DigitalSaleModel struct {
	AggregateModel
	MemberID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	LockerID         *uuid.UUID            `gorm:"type:uuid"`
	Amount           decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status           membership.SaleStatus `gorm:"type:varchar(20);not null;default:'PENDING_PAYMENT';index"`
	StartDate        time.Time             `gorm:"not null"`
	EndDate          time.Time             `gorm:"not null"`
	PaymentReference string                `gorm:"type:varchar(100)"`
	PurchasedAt      time.Time             `gorm:"not null;index"`
	CancelReason     string                `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DigitalSaleModel) TableName() string {
	return "digital_sales"
}

// ToDomain converts the persistence model to a domain DigitalSale entity.
func (m *DigitalSaleModel) ToDomain() *membership.DigitalSale {
	sale := &membership.DigitalSale{
		MemberID:         m.MemberID,
		ProductID:        m.ProductID,
		LockerID:         m.LockerID,
		Amount:           m.Amount,
		Status:           m.Status,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		PaymentReference: m.PaymentReference,
		PurchasedAt:      m.PurchasedAt,
		CancelReason:     m.CancelReason,
	}
	m.PopulateAggregateRoot(&sale.BaseAggregateRoot)
	return sale
}

// FromDomain populates the persistence model from a domain DigitalSale entity.
func (m *DigitalSaleModel) FromDomain(s *membership.DigitalSale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.MemberID = s.MemberID
	m.ProductID = s.ProductID
	m.LockerID = s.LockerID
	m.Amount = s.Amount
	m.Status = s.Status
	m.StartDate = s.StartDate
	m.EndDate = s.EndDate
	m.PaymentReference = s.PaymentReference
	m.PurchasedAt = s.PurchasedAt
	m.CancelReason = s.CancelReason
}

// PaymentNotificationModel is the persistence model for PaymentNotification.
// The payment code is unique among unanswered notifications only, hence
// the partial unique index.
type PaymentNotificationModel struct {
	AggregateModel
	MemberID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID      *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentCode string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_notifications_open_code,where:answered = false"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Subject     string          `gorm:"type:varchar(200);not null"`
	Body        string          `gorm:"type:text"`
	Read        bool            `gorm:"not null;default:false"`
	Answered    bool            `gorm:"not null;default:false;index"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (PaymentNotificationModel) TableName() string {
	return "payment_notifications"
}

// ToDomain converts the persistence model to a domain PaymentNotification entity.
func (m *PaymentNotificationModel) ToDomain() *membership.PaymentNotification {
	n := &membership.PaymentNotification{
		MemberID:    m.MemberID,
		SaleID:      m.SaleID,
		PaymentCode: m.PaymentCode,
		Amount:      m.Amount,
		Subject:     m.Subject,
		Body:        m.Body,
		Read:        m.Read,
		Answered:    m.Answered,
		ResolvedAt:  m.ResolvedAt,
	}
	m.PopulateAggregateRoot(&n.BaseAggregateRoot)
	return n
}

// FromDomain populates the persistence model from a domain PaymentNotification entity.
func (m *PaymentNotificationModel) FromDomain(n *membership.PaymentNotification) {
	m.FromDomainAggregateRoot(n.BaseAggregateRoot)
	m.MemberID = n.MemberID
	m.SaleID = n.SaleID
	m.PaymentCode = n.PaymentCode
	m.Amount = n.Amount
	m.Subject = n.Subject
	m.Body = n.Body
	m.Read = n.Read
	m.Answered = n.Answered
	m.ResolvedAt = n.ResolvedAt
}

// EntitlementModel is the persistence model for Entitlement.
type EntitlementModel struct {
	AggregateModel
	MemberID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	SaleID    *uuid.UUID `gorm:"type:uuid"`
	LockerID  *uuid.UUID `gorm:"type:uuid"`
	StartDate time.Time  `gorm:"not null"`
	EndDate   time.Time  `gorm:"not null;index"`
	Active    bool       `gorm:"not null;default:false;index"`
	Cancelled bool       `gorm:"not null;default:false"`
	Status    string     `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (EntitlementModel) TableName() string {
	return "entitlements"
}

// ToDomain converts the persistence model to a domain Entitlement entity.
func (m *EntitlementModel) ToDomain() *membership.Entitlement {
	e := &membership.Entitlement{
		MemberID:  m.MemberID,
		ProductID: m.ProductID,
		SaleID:    m.SaleID,
		LockerID:  m.LockerID,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Active:    m.Active,
		Cancelled: m.Cancelled,
		Status:    m.Status,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Entitlement entity.
func (m *EntitlementModel) FromDomain(e *membership.Entitlement) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.MemberID = e.MemberID
	m.ProductID = e.ProductID
	m.SaleID = e.SaleID
	m.LockerID = e.LockerID
	m.StartDate = e.StartDate
	m.EndDate = e.EndDate
	m.Active = e.Active
	m.Cancelled = e.Cancelled
	m.Status = e.Status
}

// EntryLogModel is the persistence model for the append-only entry log.
type EntryLogModel struct {
	BaseModel
	MemberID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AccessType string    `gorm:"type:varchar(30);not null"`
	OccurredAt time.Time `gorm:"not null;index"`
	Area       string    `gorm:"type:varchar(50)"`
	Source     string    `gorm:"type:varchar(30)"`
	Notes      string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EntryLogModel) TableName() string {
	return "entry_log"
}

// ToDomain converts the persistence model to a domain EntryLogRecord entity.
func (m *EntryLogModel) ToDomain() *membership.EntryLogRecord {
	return &membership.EntryLogRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		MemberID:   m.MemberID,
		AccessType: m.AccessType,
		OccurredAt: m.OccurredAt,
		Area:       m.Area,
		Source:     m.Source,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain EntryLogRecord entity.
func (m *EntryLogModel) FromDomain(r *membership.EntryLogRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.MemberID = r.MemberID
	m.AccessType = r.AccessType
	m.OccurredAt = r.OccurredAt
	m.Area = r.Area
	m.Source = r.Source
	m.Notes = r.Notes
}
