package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
)

// DigitalSaleRepository defines the interface for digital sale persistence
type DigitalSaleRepository interface {
	// FindByID finds a sale by ID, loading its locker association
	FindByID(ctx context.Context, id uuid.UUID) (*DigitalSale, error)

	// FindByIDDirect finds a sale by ID without joining associations.
	// Used by the resolver's defensive re-check tier, where the join
	// itself may be the reason the direct lookup missed.
	FindByIDDirect(ctx context.Context, id uuid.UUID) (*DigitalSale, error)

	// FindLatestUnsettledByMember returns the member's most recent sale
	// whose status is not ACTIVE, ordered by purchase recency.
	FindLatestUnsettledByMember(ctx context.Context, memberID uuid.UUID) (*DigitalSale, error)

	// FindByMember finds sales for a member with filtering
	FindByMember(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]DigitalSale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *DigitalSale) error
}

// PaymentNotificationRepository defines the interface for notification persistence
type PaymentNotificationRepository interface {
	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentNotification, error)

	// FindByPaymentCode finds an unanswered notification by its payment code
	FindByPaymentCode(ctx context.Context, code string) (*PaymentNotification, error)

	// FindPendingByMember finds unanswered notifications for a member
	FindPendingByMember(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]PaymentNotification, error)

	// MarkAnswered flips answered/read and stamps the resolution time as
	// a single conditional update guarded by answered = false. It
	// returns false when the guard did not match, meaning another
	// invocation already resolved the notification.
	MarkAnswered(ctx context.Context, notification *PaymentNotification) (bool, error)

	// Save creates or updates a notification
	Save(ctx context.Context, notification *PaymentNotification) error
}

// EntitlementRepository defines the interface for entitlement persistence
type EntitlementRepository interface {
	// FindByID finds an entitlement by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entitlement, error)

	// FindActiveByMember finds active entitlements for a member
	FindActiveByMember(ctx context.Context, memberID uuid.UUID) ([]Entitlement, error)

	// Save creates or updates an entitlement
	Save(ctx context.Context, entitlement *Entitlement) error
}

// EntryLogRepository defines the interface for the append-only entry log
type EntryLogRepository interface {
	// Append writes one access event. Records are never updated.
	Append(ctx context.Context, record *EntryLogRecord) error

	// FindByMember finds access events for a member with filtering
	FindByMember(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]EntryLogRecord, error)
}
