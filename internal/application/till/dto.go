package till

import (
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/till"
	"github.com/shopspring/decimal"
)

// CloseStatus is the outcome of a close attempt
type CloseStatus string

const (
	// CloseStatusClosed means the shift was settled in this call
	CloseStatusClosed CloseStatus = "closed"
	// CloseStatusAlreadyClosed means a previous call already settled it
	CloseStatusAlreadyClosed CloseStatus = "already_closed"
	// CloseStatusAuthorizationRequired means the escalation gate
	// demanded a supervisor override that was missing or invalid
	CloseStatusAuthorizationRequired CloseStatus = "authorization_required"
)

// AuthorizationRequest carries supervisor credentials for an
// out-of-window closure override
type AuthorizationRequest struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Justification string `json:"justification" binding:"required"`
}

// CloseShiftRequest is the input for closing a shift
type CloseShiftRequest struct {
	CountedAmount decimal.Decimal       `json:"counted_amount" binding:"required"`
	Notes         string                `json:"notes,omitempty"`
	Authorization *AuthorizationRequest `json:"authorization,omitempty"`
}

// CloseResult reports what a Close call did
type CloseResult struct {
	Status   CloseStatus      `json:"status"`
	Variance *decimal.Decimal `json:"variance,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Reminder string           `json:"reminder,omitempty"`
}

// ShiftResponse is the read model for a shift
type ShiftResponse struct {
	ID             uuid.UUID        `json:"id"`
	OperatorID     uuid.UUID        `json:"operator_id"`
	OpenedAt       time.Time        `json:"opened_at"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	CashSalesTotal decimal.Decimal  `json:"cash_sales_total"`
	ExpectedAmount decimal.Decimal  `json:"expected_amount"`
	CountedAmount  *decimal.Decimal `json:"counted_amount,omitempty"`
	Variance       *decimal.Decimal `json:"variance,omitempty"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	Closed         bool             `json:"closed"`
	Notes          string           `json:"notes,omitempty"`
}

// ToShiftResponse maps a domain shift to its read model
func ToShiftResponse(s *till.Shift) ShiftResponse {
	return ShiftResponse{
		ID:             s.ID,
		OperatorID:     s.OperatorID,
		OpenedAt:       s.OpenedAt,
		OpeningAmount:  s.OpeningAmount,
		CashSalesTotal: s.CashSalesTotal,
		ExpectedAmount: s.ExpectedAmount,
		CountedAmount:  s.CountedAmount,
		Variance:       s.Variance,
		ClosedAt:       s.ClosedAt,
		Closed:         s.Closed,
		Notes:          s.Notes,
	}
}
