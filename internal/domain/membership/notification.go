package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Notification subjects used by the cash-confirmation workflow.
const (
	SubjectPendingPayment   = "Pending cash payment"
	SubjectPaymentConfirmed = "Payment Confirmed"
)

// PaymentNotification identifies a pending cash obligation for a
// member. The payment code printed on the member's slip is unique
// among unanswered notifications; once the register settles the
// obligation the notification is answered exactly once and never
// deleted. A second, already-answered notification is written as the
// acknowledgement trail.
type PaymentNotification struct {
	shared.BaseAggregateRoot
	MemberID    uuid.UUID
	SaleID      *uuid.UUID
	PaymentCode string
	Amount      decimal.Decimal
	Subject     string
	Body        string
	Read        bool
	Answered    bool
	ResolvedAt  *time.Time
}

// NewPaymentNotification creates a pending-obligation notification
// with a freshly generated payment code.
func NewPaymentNotification(memberID uuid.UUID, saleID *uuid.UUID, amount decimal.Decimal, body string) (*PaymentNotification, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Pending amount cannot be negative")
	}

	return &PaymentNotification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          memberID,
		SaleID:            saleID,
		PaymentCode:       NewPaymentCode(),
		Amount:            amount,
		Subject:           SubjectPendingPayment,
		Body:              body,
	}, nil
}

// NewAcknowledgementNotification creates the audit-trail notification
// written when a payment is confirmed. It is born answered and read so
// it can never be picked up by the confirmation workflow again.
func NewAcknowledgementNotification(memberID uuid.UUID, paymentReference string, at time.Time) (*PaymentNotification, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}

	resolvedAt := at
	return &PaymentNotification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          memberID,
		PaymentCode:       NewPaymentCode(),
		Amount:            decimal.Zero,
		Subject:           SubjectPaymentConfirmed,
		Body:              "Cash payment received, reference " + paymentReference,
		Read:              true,
		Answered:          true,
		ResolvedAt:        &resolvedAt,
	}, nil
}

// MarkAnswered flips the guard flag. Persistence performs this as a
// conditional update (WHERE answered = false) so the check and the
// write happen in the same statement; this method mirrors the state
// change on the in-memory aggregate.
func (n *PaymentNotification) MarkAnswered(at time.Time) error {
	if n.Answered {
		return shared.ErrAlreadyResolved
	}

	n.Answered = true
	n.Read = true
	n.ResolvedAt = &at
	n.UpdatedAt = at

	return nil
}

// IsPending returns true while the obligation is unsettled
func (n *PaymentNotification) IsPending() bool {
	return !n.Answered
}

// NewPaymentCode generates a human-presentable payment code. Codes are
// random enough to be unique among unanswered notifications; the
// partial unique index on the table backs the invariant.
func NewPaymentCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PAY-" + strings.ToUpper(raw[:10])
}
