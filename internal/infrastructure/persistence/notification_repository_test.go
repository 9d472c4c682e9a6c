package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupNotificationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.PaymentNotificationModel{}))
	return db
}

func newTestNotification(t *testing.T) *membership.PaymentNotification {
	t.Helper()
	saleID := uuid.New()
	n, err := membership.NewPaymentNotification(uuid.New(), &saleID, decimal.NewFromInt(350), "Pending cash payment of 350.00")
	require.NoError(t, err)
	return n
}

func TestGormPaymentNotificationRepository_SaveAndFind(t *testing.T) {
	repo := NewGormPaymentNotificationRepository(setupNotificationTestDB(t))
	ctx := context.Background()

	n := newTestNotification(t)
	require.NoError(t, repo.Save(ctx, n))

	found, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.PaymentCode, found.PaymentCode)
	assert.False(t, found.Answered)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPaymentNotificationRepository_FindByPaymentCode(t *testing.T) {
	repo := NewGormPaymentNotificationRepository(setupNotificationTestDB(t))
	ctx := context.Background()

	n := newTestNotification(t)
	require.NoError(t, repo.Save(ctx, n))

	// Codes are matched case-insensitively from the slip.
	found, err := repo.FindByPaymentCode(ctx, strings.ToLower(n.PaymentCode))
	require.NoError(t, err)
	assert.Equal(t, n.ID, found.ID)

	// An answered notification is no longer addressable by code.
	require.NoError(t, n.MarkAnswered(time.Now()))
	won, err := repo.MarkAnswered(ctx, n)
	require.NoError(t, err)
	require.True(t, won)

	_, err = repo.FindByPaymentCode(ctx, n.PaymentCode)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPaymentNotificationRepository_MarkAnswered_OnlyOnce(t *testing.T) {
	repo := NewGormPaymentNotificationRepository(setupNotificationTestDB(t))
	ctx := context.Background()

	n := newTestNotification(t)
	require.NoError(t, repo.Save(ctx, n))

	resolvedAt := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	require.NoError(t, n.MarkAnswered(resolvedAt))

	won, err := repo.MarkAnswered(ctx, n)
	require.NoError(t, err)
	assert.True(t, won)

	// The guard already flipped; a second invocation matches nothing.
	won, err = repo.MarkAnswered(ctx, n)
	require.NoError(t, err)
	assert.False(t, won)

	found, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, found.Answered)
	assert.True(t, found.Read)
	require.NotNil(t, found.ResolvedAt)
}

func TestGormPaymentNotificationRepository_ReusedCodeAfterResolution(t *testing.T) {
	repo := NewGormPaymentNotificationRepository(setupNotificationTestDB(t))
	ctx := context.Background()

	n := newTestNotification(t)
	require.NoError(t, repo.Save(ctx, n))
	require.NoError(t, n.MarkAnswered(time.Now()))
	won, err := repo.MarkAnswered(ctx, n)
	require.NoError(t, err)
	require.True(t, won)

	// The partial unique index only covers unanswered rows, so a new
	// pending notification may carry the code of a resolved one.
	reuse, err := membership.NewPaymentNotification(uuid.New(), nil, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	reuse.PaymentCode = n.PaymentCode
	assert.NoError(t, repo.Save(ctx, reuse))
}

func TestGormPaymentNotificationRepository_FindPendingByMember(t *testing.T) {
	repo := NewGormPaymentNotificationRepository(setupNotificationTestDB(t))
	ctx := context.Background()

	memberID := uuid.New()
	pending, err := membership.NewPaymentNotification(memberID, nil, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, pending))

	answered, err := membership.NewPaymentNotification(memberID, nil, decimal.NewFromInt(200), "")
	require.NoError(t, err)
	require.NoError(t, answered.MarkAnswered(time.Now()))
	require.NoError(t, repo.Save(ctx, answered))

	other := newTestNotification(t)
	require.NoError(t, repo.Save(ctx, other))

	notifications, err := repo.FindPendingByMember(ctx, memberID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, pending.ID, notifications[0].ID)
}
