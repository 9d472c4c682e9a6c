package till

import (
	"context"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShiftRepository defines the interface for shift persistence
type ShiftRepository interface {
	// FindByID finds a shift by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shift, error)

	// FindOpenByOperator finds the operator's currently open shift
	FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*Shift, error)

	// FindByOperator finds shifts for an operator with filtering
	FindByOperator(ctx context.Context, operatorID uuid.UUID, filter shared.Filter) ([]Shift, error)

	// Create inserts a new shift. The partial unique index on open
	// shifts per operator makes a concurrent duplicate insert fail with
	// shared.ErrAlreadyExists.
	Create(ctx context.Context, shift *Shift) error

	// AddCashSale atomically increments the open shift's accumulated
	// cash sales and expected amount in place. Returns false when the
	// shift is missing or already closed.
	AddCashSale(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) (bool, error)

	// Close writes the closure fields guarded by closed = false in the
	// same statement. Returns false when the guard did not match,
	// meaning the shift was already closed by another invocation.
	Close(ctx context.Context, shift *Shift) (bool, error)
}
