package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/domain/till"
	"github.com/gympos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupShiftTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.ShiftModel{}))
	return db
}

func newTestShift(t *testing.T) *till.Shift {
	t.Helper()
	shift, err := till.NewShift(uuid.New(), decimal.NewFromInt(500), time.Date(2026, 3, 10, 6, 10, 0, 0, time.UTC))
	require.NoError(t, err)
	return shift
}

func TestGormShiftRepository_CreateAndFind(t *testing.T) {
	repo := NewGormShiftRepository(setupShiftTestDB(t))
	ctx := context.Background()

	shift := newTestShift(t)
	require.NoError(t, repo.Create(ctx, shift))

	found, err := repo.FindByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.OperatorID, found.OperatorID)
	assert.True(t, found.ExpectedAmount.Equal(decimal.NewFromInt(500)))
	assert.False(t, found.Closed)

	open, err := repo.FindOpenByOperator(ctx, shift.OperatorID)
	require.NoError(t, err)
	assert.Equal(t, shift.ID, open.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormShiftRepository_Create_SecondOpenShiftRejected(t *testing.T) {
	repo := NewGormShiftRepository(setupShiftTestDB(t))
	ctx := context.Background()

	first := newTestShift(t)
	require.NoError(t, repo.Create(ctx, first))

	// Same operator, still open: the partial unique index rejects it.
	second, err := till.NewShift(first.OperatorID, decimal.NewFromInt(100), first.OpenedAt.Add(time.Minute))
	require.NoError(t, err)
	err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormShiftRepository_Create_AllowedAfterClose(t *testing.T) {
	db := setupShiftTestDB(t)
	repo := NewGormShiftRepository(db)
	ctx := context.Background()

	first := newTestShift(t)
	require.NoError(t, repo.Create(ctx, first))

	require.NoError(t, first.Close(decimal.NewFromInt(500), first.OpenedAt.Add(8*time.Hour), ""))
	closed, err := repo.Close(ctx, first)
	require.NoError(t, err)
	require.True(t, closed)

	// With the first shift closed the operator may open a new one.
	second, err := till.NewShift(first.OperatorID, decimal.NewFromInt(300), first.OpenedAt.Add(9*time.Hour))
	require.NoError(t, err)
	assert.NoError(t, repo.Create(ctx, second))
}

func TestGormShiftRepository_AddCashSale(t *testing.T) {
	repo := NewGormShiftRepository(setupShiftTestDB(t))
	ctx := context.Background()

	shift := newTestShift(t)
	require.NoError(t, repo.Create(ctx, shift))

	applied, err := repo.AddCashSale(ctx, shift.ID, decimal.RequireFromString("230.50"))
	require.NoError(t, err)
	assert.True(t, applied)

	found, err := repo.FindByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.True(t, found.CashSalesTotal.Equal(decimal.RequireFromString("230.50")),
		"cash sales total = %s", found.CashSalesTotal)
	assert.True(t, found.ExpectedAmount.Equal(decimal.RequireFromString("730.50")),
		"expected amount = %s", found.ExpectedAmount)
}

func TestGormShiftRepository_AddCashSale_ClosedShift(t *testing.T) {
	repo := NewGormShiftRepository(setupShiftTestDB(t))
	ctx := context.Background()

	shift := newTestShift(t)
	require.NoError(t, repo.Create(ctx, shift))
	require.NoError(t, shift.Close(decimal.NewFromInt(500), shift.OpenedAt.Add(8*time.Hour), ""))
	closed, err := repo.Close(ctx, shift)
	require.NoError(t, err)
	require.True(t, closed)

	applied, err := repo.AddCashSale(ctx, shift.ID, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.False(t, applied)

	// Missing shift behaves the same as a closed one.
	applied, err = repo.AddCashSale(ctx, uuid.New(), decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestGormShiftRepository_Close_SecondCallDoesNotMatch(t *testing.T) {
	repo := NewGormShiftRepository(setupShiftTestDB(t))
	ctx := context.Background()

	shift := newTestShift(t)
	require.NoError(t, repo.Create(ctx, shift))

	require.NoError(t, shift.Close(decimal.NewFromInt(470), shift.OpenedAt.Add(8*time.Hour), "drawer light"))

	closed, err := repo.Close(ctx, shift)
	require.NoError(t, err)
	assert.True(t, closed)

	// The guard (closed = false) no longer matches.
	closed, err = repo.Close(ctx, shift)
	require.NoError(t, err)
	assert.False(t, closed)

	found, err := repo.FindByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.True(t, found.Closed)
	require.NotNil(t, found.Variance)
	assert.True(t, found.Variance.Equal(decimal.NewFromInt(-30)), "variance = %s", found.Variance)
	assert.Equal(t, "drawer light", found.Notes)
}

func TestGormShiftRepository_FindByOperator(t *testing.T) {
	repo := NewGormShiftRepository(setupShiftTestDB(t))
	ctx := context.Background()

	shift := newTestShift(t)
	require.NoError(t, repo.Create(ctx, shift))

	shifts, err := repo.FindByOperator(ctx, shift.OperatorID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, shift.ID, shifts[0].ID)

	shifts, err = repo.FindByOperator(ctx, shift.OperatorID, shared.Filter{
		Filters: map[string]interface{}{"closed": true},
	})
	require.NoError(t, err)
	assert.Empty(t, shifts)
}
