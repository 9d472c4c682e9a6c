package membership

import (
	"context"

	"github.com/gympos/backend/internal/domain/membership"
)

// TransactionScope provides transactional access to the repositories
// the confirmation workflow fans out to. All repository operations
// performed inside Execute share one database transaction and commit
// or roll back atomically; no partial confirmation is ever visible.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the membership
// repositories within a transaction. All repositories returned share
// the same underlying database transaction.
type TransactionalRepositories interface {
	// SaleRepo returns the digital sale repository scoped to the current transaction
	SaleRepo() membership.DigitalSaleRepository
	// NotificationRepo returns the notification repository scoped to the current transaction
	NotificationRepo() membership.PaymentNotificationRepository
	// EntitlementRepo returns the entitlement repository scoped to the current transaction
	EntitlementRepo() membership.EntitlementRepository
	// EntryLogRepo returns the entry log repository scoped to the current transaction
	EntryLogRepo() membership.EntryLogRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually
// use transactions. Useful for tests built on repository mocks.
type NoOpTransactionScope struct {
	saleRepo         membership.DigitalSaleRepository
	notificationRepo membership.PaymentNotificationRepository
	entitlementRepo  membership.EntitlementRepository
	entryLogRepo     membership.EntryLogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	saleRepo membership.DigitalSaleRepository,
	notificationRepo membership.PaymentNotificationRepository,
	entitlementRepo membership.EntitlementRepository,
	entryLogRepo membership.EntryLogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:         saleRepo,
		notificationRepo: notificationRepo,
		entitlementRepo:  entitlementRepo,
		entryLogRepo:     entryLogRepo,
	}
}

// Execute runs fn directly against the configured repositories.
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the configured sale repository.
func (s *NoOpTransactionScope) SaleRepo() membership.DigitalSaleRepository {
	return s.saleRepo
}

// NotificationRepo returns the configured notification repository.
func (s *NoOpTransactionScope) NotificationRepo() membership.PaymentNotificationRepository {
	return s.notificationRepo
}

// EntitlementRepo returns the configured entitlement repository.
func (s *NoOpTransactionScope) EntitlementRepo() membership.EntitlementRepository {
	return s.entitlementRepo
}

// EntryLogRepo returns the configured entry log repository.
func (s *NoOpTransactionScope) EntryLogRepo() membership.EntryLogRepository {
	return s.entryLogRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
