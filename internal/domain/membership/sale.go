package membership

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a digital sale
type SaleStatus string

const (
	SaleStatusPendingPayment SaleStatus = "PENDING_PAYMENT"
	SaleStatusActive         SaleStatus = "ACTIVE"
	SaleStatusCancelled      SaleStatus = "CANCELLED"
	SaleStatusExpired        SaleStatus = "EXPIRED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPendingPayment, SaleStatusActive, SaleStatusCancelled, SaleStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusPendingPayment:
		return target == SaleStatusActive || target == SaleStatusCancelled
	case SaleStatusActive:
		// Expiry is driven by an external sweep, not by this workflow.
		return target == SaleStatusExpired
	case SaleStatusCancelled, SaleStatusExpired:
		return false // Terminal states
	}
	return false
}

// DigitalSale represents the purchase of a non-physical product
// (membership, locker rental, day pass). It is the aggregate root for
// the cash-confirmation workflow: a sale starts in PENDING_PAYMENT and
// becomes ACTIVE exactly once, when the pending cash obligation is
// settled at the register.
type DigitalSale struct {
	shared.BaseAggregateRoot
	MemberID         uuid.UUID
	ProductID        uuid.UUID
	LockerID         *uuid.UUID
	Amount           decimal.Decimal
	Status           SaleStatus
	StartDate        time.Time
	EndDate          time.Time
	PaymentReference string
	PurchasedAt      time.Time
	CancelReason     string
}

// NewDigitalSale creates a new digital sale pending cash payment
func NewDigitalSale(memberID, productID uuid.UUID, lockerID *uuid.UUID, amount decimal.Decimal, startDate, endDate time.Time) (*DigitalSale, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale amount cannot be negative")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "End date cannot be before start date")
	}

	return &DigitalSale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          memberID,
		ProductID:         productID,
		LockerID:          lockerID,
		Amount:            amount,
		Status:            SaleStatusPendingPayment,
		StartDate:         startDate,
		EndDate:           endDate,
		PurchasedAt:       time.Now(),
	}, nil
}

// ConfirmPayment transitions the sale from PENDING_PAYMENT to ACTIVE,
// stamping the payment reference and the confirmation time.
func (s *DigitalSale) ConfirmPayment(paymentReference string, at time.Time) error {
	if !s.Status.CanTransitionTo(SaleStatusActive) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm sale in %s status", s.Status))
	}
	if paymentReference == "" {
		return shared.NewDomainError("INVALID_PAYMENT_REFERENCE", "Payment reference cannot be empty")
	}

	s.Status = SaleStatusActive
	s.PaymentReference = paymentReference
	s.PurchasedAt = at
	s.UpdatedAt = at

	return nil
}

// Cancel cancels a sale that never got paid
func (s *DigitalSale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	s.Status = SaleStatusCancelled
	s.CancelReason = reason
	s.UpdatedAt = time.Now()

	return nil
}

// Expire marks an active sale as expired. Driven by the external
// expiry sweep, never by the confirmation workflow.
func (s *DigitalSale) Expire(at time.Time) error {
	if !s.Status.CanTransitionTo(SaleStatusExpired) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire sale in %s status", s.Status))
	}

	s.Status = SaleStatusExpired
	s.UpdatedAt = at

	return nil
}

// IsPendingPayment returns true if the sale awaits cash settlement
func (s *DigitalSale) IsPendingPayment() bool {
	return s.Status == SaleStatusPendingPayment
}

// IsActive returns true if the sale has been paid and activated
func (s *DigitalSale) IsActive() bool {
	return s.Status == SaleStatusActive
}

// IsTerminal returns true if the sale is cancelled or expired
func (s *DigitalSale) IsTerminal() bool {
	return s.Status == SaleStatusCancelled || s.Status == SaleStatusExpired
}
