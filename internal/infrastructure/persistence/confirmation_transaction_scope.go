package persistence

import (
	"context"

	appmembership "github.com/gympos/backend/internal/application/membership"
	"github.com/gympos/backend/internal/domain/membership"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// The confirmation workflow runs its six writes through it so they
// commit or roll back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appmembership.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the digital sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() membership.DigitalSaleRepository {
	return NewGormDigitalSaleRepository(r.tx)
}

// NotificationRepo returns the notification repository scoped to the current transaction.
func (r *gormTransactionalRepositories) NotificationRepo() membership.PaymentNotificationRepository {
	return NewGormPaymentNotificationRepository(r.tx)
}

// EntitlementRepo returns the entitlement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) EntitlementRepo() membership.EntitlementRepository {
	return NewGormEntitlementRepository(r.tx)
}

// EntryLogRepo returns the entry log repository scoped to the current transaction.
func (r *gormTransactionalRepositories) EntryLogRepo() membership.EntryLogRepository {
	return NewGormEntryLogRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appmembership.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appmembership.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
