package till

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/domain/till"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Authorizer verifies supervisor credentials for a close override.
// The identity provider behind it is a black box to this workflow; it
// only reports whether the credentials are valid and, when they are,
// the supervisor's display name for the authorization record.
type Authorizer interface {
	VerifySupervisor(ctx context.Context, username, password string) (adminName string, ok bool, err error)
}

// ShiftService manages the cash-shift lifecycle: open, accumulate
// cash sales, and close with monetary reconciliation. Closing outside
// the shift's expected time window goes through the escalation gate
// and needs a supervisor override.
type ShiftService struct {
	shiftRepo  till.ShiftRepository
	authorizer Authorizer
	clock      shared.Clock
	logger     *zap.Logger
}

// NewShiftService creates a ShiftService
func NewShiftService(shiftRepo till.ShiftRepository, authorizer Authorizer, clock shared.Clock, logger *zap.Logger) *ShiftService {
	return &ShiftService{
		shiftRepo:  shiftRepo,
		authorizer: authorizer,
		clock:      clock,
		logger:     logger,
	}
}

// Open starts a shift for the operator, or returns the one already
// open. The uniqueness constraint on open shifts per operator decides
// the race between concurrent opens: the loser refetches and both
// callers end up with the same shift.
func (s *ShiftService) Open(ctx context.Context, operatorID uuid.UUID, openingAmount decimal.Decimal) (*ShiftResponse, error) {
	existing, err := s.shiftRepo.FindOpenByOperator(ctx, operatorID)
	if err == nil {
		resp := ToShiftResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	shift, err := till.NewShift(operatorID, openingAmount, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the open race; the winner's row is the shift.
			existing, ferr := s.shiftRepo.FindOpenByOperator(ctx, operatorID)
			if ferr != nil {
				return nil, ferr
			}
			resp := ToShiftResponse(existing)
			return &resp, nil
		}
		return nil, err
	}

	s.logger.Info("shift opened",
		zap.String("shift_id", shift.ID.String()),
		zap.String("operator_id", operatorID.String()),
		zap.String("opening_amount", openingAmount.StringFixed(2)))

	resp := ToShiftResponse(shift)
	return &resp, nil
}

// GetCurrent returns the operator's open shift
func (s *ShiftService) GetCurrent(ctx context.Context, operatorID uuid.UUID) (*ShiftResponse, error) {
	shift, err := s.shiftRepo.FindOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	resp := ToShiftResponse(shift)
	return &resp, nil
}

// RecordCashSale adds a cash sale to the operator's open shift. The
// increment is applied in place by the data store so concurrent sales
// from the same drawer never lose updates.
func (s *ShiftService) RecordCashSale(ctx context.Context, operatorID uuid.UUID, amount decimal.Decimal) (*ShiftResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cash sale amount must be positive")
	}

	shift, err := s.shiftRepo.FindOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	applied, err := s.shiftRepo.AddCashSale(ctx, shift.ID, amount)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, shared.ErrShiftAlreadyClosed
	}

	updated, err := s.shiftRepo.FindByID(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	resp := ToShiftResponse(updated)
	return &resp, nil
}

// Close settles the shift. The escalation gate decides from the
// opening time whether a supervisor override is needed; with a valid
// override the authorization record is appended to the close notes.
// A shift already closed reports already_closed instead of erroring,
// so retries are safe.
func (s *ShiftService) Close(ctx context.Context, shiftID uuid.UUID, req CloseShiftRequest) (*CloseResult, error) {
	shift, err := s.shiftRepo.FindByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Closed {
		return &CloseResult{Status: CloseStatusAlreadyClosed}, nil
	}

	now := s.clock.Now()
	decision := till.EvaluateCloseTime(shift.OpenedAt, now)

	notes := req.Notes
	if decision.Required {
		if req.Authorization == nil {
			return &CloseResult{
				Status: CloseStatusAuthorizationRequired,
				Reason: decision.Reason,
			}, nil
		}

		adminName, ok, err := s.authorizer.VerifySupervisor(ctx, req.Authorization.Username, req.Authorization.Password)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &CloseResult{
				Status: CloseStatusAuthorizationRequired,
				Reason: decision.Reason,
			}, nil
		}

		record := till.AuthorizationRecord{
			AdminName:     adminName,
			Justification: req.Authorization.Justification,
			GrantedAt:     now,
		}
		if notes != "" {
			notes += "\n"
		}
		notes += record.String()
	}

	if err := shift.Close(req.CountedAmount, now, notes); err != nil {
		return nil, err
	}

	closed, err := s.shiftRepo.Close(ctx, shift)
	if err != nil {
		return nil, err
	}
	if !closed {
		// Another station settled the drawer between our read and write.
		return &CloseResult{Status: CloseStatusAlreadyClosed}, nil
	}

	s.logger.Info("shift closed",
		zap.String("shift_id", shift.ID.String()),
		zap.String("operator_id", shift.OperatorID.String()),
		zap.String("variance", shift.Variance.StringFixed(2)),
		zap.Bool("override", decision.Required))

	result := &CloseResult{
		Status:   CloseStatusClosed,
		Variance: shift.Variance,
	}
	if decision.Reminder {
		result.Reminder = decision.Reason
	}
	return result, nil
}
