package membership

import (
	"context"
	"errors"

	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
)

// ResolverStrategy is one lookup tier of the entitlement resolver.
// Each strategy is a pure read: it either finds the pending sale
// behind a notification or reports a miss with shared.ErrNotFound.
type ResolverStrategy func(ctx context.Context, repos TransactionalRepositories, n *membership.PaymentNotification) (*membership.DigitalSale, error)

// resolveByLinkedSale fetches the sale the notification points at
// through the repository's model query path.
func resolveByLinkedSale(ctx context.Context, repos TransactionalRepositories, n *membership.PaymentNotification) (*membership.DigitalSale, error) {
	if n.SaleID == nil {
		return nil, shared.ErrNotFound
	}
	return repos.SaleRepo().FindByID(ctx, *n.SaleID)
}

// resolveByLinkedSaleDirect re-checks the linked sale with a raw
// statement that bypasses the model query builder. A builder-path miss
// must not discard a notification that still carries a valid sale
// reference.
func resolveByLinkedSaleDirect(ctx context.Context, repos TransactionalRepositories, n *membership.PaymentNotification) (*membership.DigitalSale, error) {
	if n.SaleID == nil {
		return nil, shared.ErrNotFound
	}
	return repos.SaleRepo().FindByIDDirect(ctx, *n.SaleID)
}

// resolveByMemberLatest falls back to the member's most recent sale
// that is not yet ACTIVE. Handles notifications whose originating link
// was never populated.
func resolveByMemberLatest(ctx context.Context, repos TransactionalRepositories, n *membership.PaymentNotification) (*membership.DigitalSale, error) {
	return repos.SaleRepo().FindLatestUnsettledByMember(ctx, n.MemberID)
}

// defaultResolverChain is the ordered fallback chain; first hit wins.
func defaultResolverChain() []ResolverStrategy {
	return []ResolverStrategy{
		resolveByLinkedSale,
		resolveByLinkedSaleDirect,
		resolveByMemberLatest,
	}
}

// resolveSale walks the chain. A strategy miss (shared.ErrNotFound)
// moves on to the next tier; any other error aborts immediately. When
// every tier misses the caller gets shared.ErrNotFound and must abort
// the confirmation without side effects.
func resolveSale(ctx context.Context, repos TransactionalRepositories, chain []ResolverStrategy, n *membership.PaymentNotification) (*membership.DigitalSale, error) {
	for _, strategy := range chain {
		sale, err := strategy(ctx, repos, n)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if sale != nil {
			return sale, nil
		}
	}
	return nil, shared.ErrNotFound
}
