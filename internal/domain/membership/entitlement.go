package membership

import (
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
)

// EntitlementStatus values. The active status keeps the legacy
// Spanish literal carried by the member-facing systems.
const (
	EntitlementStatusActive    = "activa"
	EntitlementStatusCancelled = "cancelada"
)

// Entitlement is the active grant of a digital product to a member.
// It records the product, not the sale: the originating-sale reference
// stays nil at creation so the grant remains valid even if the sale
// record is later archived.
type Entitlement struct {
	shared.BaseAggregateRoot
	MemberID  uuid.UUID
	ProductID uuid.UUID
	SaleID    *uuid.UUID
	LockerID  *uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Active    bool
	Cancelled bool
	Status    string
}

// NewEntitlementFromSale creates the entitlement granted when a sale's
// cash payment is confirmed. Member, product, locker and period are
// copied from the sale as of confirmation time.
func NewEntitlementFromSale(sale *DigitalSale, at time.Time) (*Entitlement, error) {
	if sale == nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale cannot be nil")
	}
	if sale.MemberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Sale has no member reference")
	}

	e := &Entitlement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          sale.MemberID,
		ProductID:         sale.ProductID,
		LockerID:          sale.LockerID,
		StartDate:         sale.StartDate,
		EndDate:           sale.EndDate,
		Active:            true,
		Cancelled:         false,
		Status:            EntitlementStatusActive,
	}
	e.CreatedAt = at
	e.UpdatedAt = at

	return e, nil
}

// Cancel revokes the entitlement
func (e *Entitlement) Cancel(at time.Time) error {
	if !e.Active {
		return shared.ErrInvalidState
	}

	e.Active = false
	e.Cancelled = true
	e.Status = EntitlementStatusCancelled
	e.UpdatedAt = at

	return nil
}

// IsCurrent reports whether the entitlement covers the given instant
func (e *Entitlement) IsCurrent(at time.Time) bool {
	return e.Active && !at.Before(e.StartDate) && !at.After(e.EndDate)
}
