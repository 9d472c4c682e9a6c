package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	appmembership "github.com/gympos/backend/internal/application/membership"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockTransactionScope(t *testing.T) (*GormTransactionScope, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTransactionScope(gormDB), mock, mockDB
}

func TestGormTransactionScope_CommitsOnSuccess(t *testing.T) {
	scope, mock, mockDB := newMockTransactionScope(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var sawRepos bool
	err := scope.Execute(context.Background(), func(repos appmembership.TransactionalRepositories) error {
		sawRepos = repos.SaleRepo() != nil &&
			repos.NotificationRepo() != nil &&
			repos.EntitlementRepo() != nil &&
			repos.EntryLogRepo() != nil
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, sawRepos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	scope, mock, mockDB := newMockTransactionScope(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("resolver missed")
	err := scope.Execute(context.Background(), func(repos appmembership.TransactionalRepositories) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionScope_RollsBackOnPanic(t *testing.T) {
	scope, mock, mockDB := newMockTransactionScope(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = scope.Execute(context.Background(), func(repos appmembership.TransactionalRepositories) error {
			panic("mid-transaction failure")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

// setupConfirmationScopeDB builds a store where the entitlement write
// fails: every table except entitlements is migrated, so a confirmation
// runs its first writes and then hits a missing table mid-transaction.
func setupConfirmationScopeDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.DigitalSaleModel{},
		&models.PaymentNotificationModel{},
		&models.EntryLogModel{},
	))
	return db
}

func TestConfirmation_RollsBackWhenEntitlementWriteFails(t *testing.T) {
	db := setupConfirmationScopeDB(t)
	ctx := context.Background()

	sale, err := membership.NewDigitalSale(uuid.New(), uuid.New(), nil,
		decimal.NewFromInt(350),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, NewGormDigitalSaleRepository(db).Save(ctx, sale))

	saleID := sale.ID
	notification, err := membership.NewPaymentNotification(sale.MemberID, &saleID,
		decimal.NewFromInt(350), "Pending cash payment of 350.00")
	require.NoError(t, err)
	require.NoError(t, NewGormPaymentNotificationRepository(db).Save(ctx, notification))

	svc := appmembership.NewConfirmationService(
		NewGormTransactionScope(db),
		shared.FixedClock{Instant: time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)},
		zap.NewNop(),
	)

	_, err = svc.ConfirmCashPayment(ctx, notification.ID, "member showed slip")
	require.Error(t, err)

	// The sale activation and answered flip preceded the failed write;
	// neither may survive the rollback.
	foundSale, err := NewGormDigitalSaleRepository(db).FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, membership.SaleStatusPendingPayment, foundSale.Status)
	assert.Empty(t, foundSale.PaymentReference)

	foundNotification, err := NewGormPaymentNotificationRepository(db).FindByID(ctx, notification.ID)
	require.NoError(t, err)
	assert.False(t, foundNotification.Answered)
	assert.Nil(t, foundNotification.ResolvedAt)

	var entryCount int64
	require.NoError(t, db.Model(&models.EntryLogModel{}).Count(&entryCount).Error)
	assert.Zero(t, entryCount)

	// No acknowledgement row either; the seeded notification is alone.
	var notificationCount int64
	require.NoError(t, db.Model(&models.PaymentNotificationModel{}).Count(&notificationCount).Error)
	assert.EqualValues(t, 1, notificationCount)

	// Once the store is repaired the same call settles the obligation.
	require.NoError(t, db.AutoMigrate(&models.EntitlementModel{}))
	result, err := svc.ConfirmCashPayment(ctx, notification.ID, "")
	require.NoError(t, err)
	assert.Equal(t, appmembership.ConfirmationActivated, result.Status)
}
