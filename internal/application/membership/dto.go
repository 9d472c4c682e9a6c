package membership

import (
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/shopspring/decimal"
)

// ConfirmationStatus is the outcome of a confirmation attempt
type ConfirmationStatus string

const (
	// ConfirmationActivated means the entitlement was created in this call
	ConfirmationActivated ConfirmationStatus = "activated"
	// ConfirmationAlreadyResolved means the notification was answered
	// before this call; nothing was reprocessed
	ConfirmationAlreadyResolved ConfirmationStatus = "already_resolved"
)

// ConfirmationResult reports what a ConfirmCashPayment call did
type ConfirmationResult struct {
	Status           ConfirmationStatus `json:"status"`
	EntitlementID    uuid.UUID          `json:"entitlement_id,omitempty"`
	EntryLogID       uuid.UUID          `json:"entry_log_id,omitempty"`
	PaymentReference string             `json:"payment_reference,omitempty"`
}

// CreatePendingSaleRequest is the input for selling a digital product
// with deferred cash payment
type CreatePendingSaleRequest struct {
	MemberID  uuid.UUID       `json:"member_id" binding:"required"`
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	LockerID  *uuid.UUID      `json:"locker_id,omitempty"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
	Remark    string          `json:"remark,omitempty"`
}

// PendingSaleResponse reports the sale and notification created by the intake
type PendingSaleResponse struct {
	SaleID         uuid.UUID       `json:"sale_id"`
	NotificationID uuid.UUID       `json:"notification_id"`
	PaymentCode    string          `json:"payment_code"`
	Amount         decimal.Decimal `json:"amount"`
}

// NotificationResponse is the read model for a payment notification
type NotificationResponse struct {
	ID          uuid.UUID       `json:"id"`
	MemberID    uuid.UUID       `json:"member_id"`
	SaleID      *uuid.UUID      `json:"sale_id,omitempty"`
	PaymentCode string          `json:"payment_code"`
	Amount      decimal.Decimal `json:"amount"`
	Subject     string          `json:"subject"`
	Body        string          `json:"body,omitempty"`
	Answered    bool            `json:"answered"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToNotificationResponse maps a domain notification to its read model
func ToNotificationResponse(n *membership.PaymentNotification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		MemberID:    n.MemberID,
		SaleID:      n.SaleID,
		PaymentCode: n.PaymentCode,
		Amount:      n.Amount,
		Subject:     n.Subject,
		Body:        n.Body,
		Answered:    n.Answered,
		ResolvedAt:  n.ResolvedAt,
		CreatedAt:   n.CreatedAt,
	}
}

// SaleResponse is the read model for a digital sale
type SaleResponse struct {
	ID               uuid.UUID       `json:"id"`
	MemberID         uuid.UUID       `json:"member_id"`
	ProductID        uuid.UUID       `json:"product_id"`
	LockerID         *uuid.UUID      `json:"locker_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	PurchasedAt      time.Time       `json:"purchased_at"`
}

// ToSaleResponse maps a domain sale to its read model
func ToSaleResponse(s *membership.DigitalSale) SaleResponse {
	return SaleResponse{
		ID:               s.ID,
		MemberID:         s.MemberID,
		ProductID:        s.ProductID,
		LockerID:         s.LockerID,
		Amount:           s.Amount,
		Status:           s.Status.String(),
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		PaymentReference: s.PaymentReference,
		PurchasedAt:      s.PurchasedAt,
	}
}
