package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ConfirmationService resolves pending cash-payment notifications into
// active entitlements. Every confirmation runs as one atomic unit
// against the data store; the answered flag on the notification is the
// idempotency guard, flipped by a conditional update inside the same
// transaction as the writes it protects.
type ConfirmationService struct {
	scope    TransactionScope
	resolver []ResolverStrategy
	clock    shared.Clock
	logger   *zap.Logger
}

// NewConfirmationService creates a ConfirmationService
func NewConfirmationService(scope TransactionScope, clock shared.Clock, logger *zap.Logger) *ConfirmationService {
	return &ConfirmationService{
		scope:    scope,
		resolver: defaultResolverChain(),
		clock:    clock,
		logger:   logger,
	}
}

// Resolve locates the digital sale behind a payment notification using
// the fallback chain. Read-only; returns shared.ErrNotFound when the
// notification is missing or every tier misses.
func (s *ConfirmationService) Resolve(ctx context.Context, notificationID uuid.UUID) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		notification, err := repos.NotificationRepo().FindByID(ctx, notificationID)
		if err != nil {
			return err
		}

		sale, err := resolveSale(ctx, repos, s.resolver, notification)
		if err != nil {
			return err
		}

		r := ToSaleResponse(sale)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ConfirmCashPayment settles a pending notification: the sale goes
// ACTIVE, the notification is answered, one entitlement and one entry
// log record are created, and an acknowledgement notification is
// written. All six writes commit together or not at all, so the
// caller can retry the whole call after any failure.
func (s *ConfirmationService) ConfirmCashPayment(ctx context.Context, notificationID uuid.UUID, observations string) (*ConfirmationResult, error) {
	now := s.clock.Now()
	result := &ConfirmationResult{Status: ConfirmationAlreadyResolved}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		notification, err := repos.NotificationRepo().FindByID(ctx, notificationID)
		if err != nil {
			return err
		}
		if notification.Answered {
			// Safe retry: report success without reprocessing.
			return nil
		}

		sale, err := resolveSale(ctx, repos, s.resolver, notification)
		if err != nil {
			s.logger.Warn("confirmation aborted, no sale resolved",
				zap.String("notification_id", notificationID.String()),
				zap.String("member_id", notification.MemberID.String()))
			return err
		}

		paymentReference := fmt.Sprintf("CASH-%s", now.Format("20060102150405"))
		if err := sale.ConfirmPayment(paymentReference, now); err != nil {
			return err
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		if err := notification.MarkAnswered(now); err != nil {
			return err
		}
		answered, err := repos.NotificationRepo().MarkAnswered(ctx, notification)
		if err != nil {
			return err
		}
		if !answered {
			// Lost the race with a concurrent confirmation: roll back
			// the sale write and let the retry observe already_resolved.
			return shared.ErrAlreadyResolved
		}

		entitlement, err := membership.NewEntitlementFromSale(sale, now)
		if err != nil {
			return err
		}
		if err := repos.EntitlementRepo().Save(ctx, entitlement); err != nil {
			return err
		}

		notes := "payment " + paymentReference
		if observations != "" {
			notes += "; " + observations
		}
		entry, err := membership.NewEntryLogRecord(
			sale.MemberID,
			membership.AccessTypeMember,
			membership.AreaReception,
			membership.SourcePOS,
			notes,
			now,
		)
		if err != nil {
			return err
		}
		if err := repos.EntryLogRepo().Append(ctx, entry); err != nil {
			return err
		}

		ack, err := membership.NewAcknowledgementNotification(sale.MemberID, paymentReference, now)
		if err != nil {
			return err
		}
		if err := repos.NotificationRepo().Save(ctx, ack); err != nil {
			return err
		}

		result = &ConfirmationResult{
			Status:           ConfirmationActivated,
			EntitlementID:    entitlement.ID,
			EntryLogID:       entry.ID,
			PaymentReference: paymentReference,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyResolved) {
			return &ConfirmationResult{Status: ConfirmationAlreadyResolved}, nil
		}
		return nil, err
	}

	if result.Status == ConfirmationActivated {
		s.logger.Info("cash payment confirmed",
			zap.String("notification_id", notificationID.String()),
			zap.String("entitlement_id", result.EntitlementID.String()),
			zap.String("payment_reference", result.PaymentReference))
	}
	return result, nil
}
