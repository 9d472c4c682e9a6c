package membership

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SaleService handles the intake of digital sales paid later in cash.
// It creates the PENDING_PAYMENT sale together with the notification
// that carries the member's payment code, atomically, so a pending
// obligation always has a resolvable sale behind it.
type SaleService struct {
	scope  TransactionScope
	clock  shared.Clock
	logger *zap.Logger
}

// NewSaleService creates a SaleService
func NewSaleService(scope TransactionScope, clock shared.Clock, logger *zap.Logger) *SaleService {
	return &SaleService{
		scope:  scope,
		clock:  clock,
		logger: logger,
	}
}

// CreatePendingSale records a digital-product sale with deferred cash
// payment and issues the payment notification for it.
func (s *SaleService) CreatePendingSale(ctx context.Context, req CreatePendingSaleRequest) (*PendingSaleResponse, error) {
	sale, err := membership.NewDigitalSale(req.MemberID, req.ProductID, req.LockerID, req.Amount, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	sale.PurchasedAt = s.clock.Now()

	body := fmt.Sprintf("Pending cash payment of %s", req.Amount.StringFixed(2))
	if req.Remark != "" {
		body += "; " + req.Remark
	}

	saleID := sale.ID
	notification, err := membership.NewPaymentNotification(req.MemberID, &saleID, req.Amount, body)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		return repos.NotificationRepo().Save(ctx, notification)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("pending digital sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("payment_code", notification.PaymentCode))

	return &PendingSaleResponse{
		SaleID:         sale.ID,
		NotificationID: notification.ID,
		PaymentCode:    notification.PaymentCode,
		Amount:         req.Amount,
	}, nil
}

// ListMemberSales returns a member's sales matching the filter
func (s *SaleService) ListMemberSales(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]SaleResponse, error) {
	var responses []SaleResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sales, err := repos.SaleRepo().FindByMember(ctx, memberID, filter)
		if err != nil {
			return err
		}
		responses = make([]SaleResponse, len(sales))
		for i := range sales {
			responses[i] = ToSaleResponse(&sales[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListPendingNotifications returns a member's unanswered payment notifications
func (s *SaleService) ListPendingNotifications(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]NotificationResponse, error) {
	var responses []NotificationResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		notifications, err := repos.NotificationRepo().FindPendingByMember(ctx, memberID, filter)
		if err != nil {
			return err
		}
		responses = make([]NotificationResponse, len(notifications))
		for i := range notifications {
			responses[i] = ToNotificationResponse(&notifications[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}
