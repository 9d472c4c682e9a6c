package till

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Shift is the till session aggregate: the span during which one
// operator is responsible for a cash drawer. The database enforces at
// most one open shift per operator with a partial unique index, so a
// concurrent second open resolves to the existing row instead of a
// duplicate.
type Shift struct {
	shared.BaseAggregateRoot
	OperatorID     uuid.UUID
	OpenedAt       time.Time
	OpeningAmount  decimal.Decimal
	CashSalesTotal decimal.Decimal
	ExpectedAmount decimal.Decimal
	CountedAmount  *decimal.Decimal
	Variance       *decimal.Decimal
	ClosedAt       *time.Time
	Closed         bool
	Notes          string
}

// NewShift opens a shift for an operator with the counted opening float
func NewShift(operatorID uuid.UUID, openingAmount decimal.Decimal, at time.Time) (*Shift, error) {
	if operatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OPERATOR", "Operator ID cannot be empty")
	}
	if openingAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Opening amount cannot be negative")
	}

	s := &Shift{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OperatorID:        operatorID,
		OpenedAt:          at,
		OpeningAmount:     openingAmount,
		CashSalesTotal:    decimal.Zero,
		ExpectedAmount:    openingAmount,
	}
	s.CreatedAt = at
	s.UpdatedAt = at

	return s, nil
}

// RecordCashSale adds a cash sale to the shift's running totals.
// Expected cash is always opening amount plus accumulated sales and is
// monotonically increasing while the shift is open.
func (s *Shift) RecordCashSale(amount decimal.Decimal) error {
	if s.Closed {
		return shared.ErrShiftAlreadyClosed
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Cash sale amount must be positive")
	}

	s.CashSalesTotal = s.CashSalesTotal.Add(amount)
	s.ExpectedAmount = s.OpeningAmount.Add(s.CashSalesTotal)
	s.UpdatedAt = time.Now()

	return nil
}

// Close settles the drawer: variance = counted - expected. A closed
// shift never reopens; persistence applies the closed flag as a
// conditional update so a duplicate close is rejected, not reapplied.
func (s *Shift) Close(countedAmount decimal.Decimal, at time.Time, notes string) error {
	if s.Closed {
		return shared.ErrShiftAlreadyClosed
	}
	if countedAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Counted amount cannot be negative")
	}

	variance := countedAmount.Sub(s.ExpectedAmount)
	closedAt := at

	s.CountedAmount = &countedAmount
	s.Variance = &variance
	s.ClosedAt = &closedAt
	s.Closed = true
	if notes != "" {
		if s.Notes != "" {
			s.Notes += "\n"
		}
		s.Notes += notes
	}
	s.UpdatedAt = at

	return nil
}

// IsOpen returns true while the drawer is active
func (s *Shift) IsOpen() bool {
	return !s.Closed
}

// AuthorizationRecord captures a supervisor override for an
// out-of-window closure. It is embedded in the shift's close notes
// rather than stored as its own row.
type AuthorizationRecord struct {
	AdminName     string
	Justification string
	GrantedAt     time.Time
}

// String renders the record the way it is appended to close notes
func (a AuthorizationRecord) String() string {
	return fmt.Sprintf("[override] authorized by %s at %s: %s",
		a.AdminName, a.GrantedAt.Format("2006-01-02 15:04"), a.Justification)
}
