package membership

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntitlementFromSale(t *testing.T) {
	lockerID := uuid.New()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sale, err := NewDigitalSale(uuid.New(), uuid.New(), &lockerID, decimal.NewFromInt(350), start, end)
	require.NoError(t, err)

	confirmedAt := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	e, err := NewEntitlementFromSale(sale, confirmedAt)
	require.NoError(t, err)

	assert.Equal(t, sale.MemberID, e.MemberID)
	assert.Equal(t, sale.ProductID, e.ProductID)
	require.NotNil(t, e.LockerID)
	assert.Equal(t, lockerID, *e.LockerID)
	assert.Equal(t, start, e.StartDate)
	assert.Equal(t, end, e.EndDate)
	assert.True(t, e.Active)
	assert.False(t, e.Cancelled)
	assert.Equal(t, EntitlementStatusActive, e.Status)

	// The grant stands on its own; no back-reference to the sale.
	assert.Nil(t, e.SaleID)
}

func TestNewEntitlementFromSale_NilSale(t *testing.T) {
	_, err := NewEntitlementFromSale(nil, time.Now())
	assert.Error(t, err)
}

func TestEntitlement_Cancel(t *testing.T) {
	sale := validSale(t)
	e, err := NewEntitlementFromSale(sale, time.Now())
	require.NoError(t, err)

	require.NoError(t, e.Cancel(time.Now()))
	assert.False(t, e.Active)
	assert.True(t, e.Cancelled)
	assert.Equal(t, EntitlementStatusCancelled, e.Status)

	assert.Error(t, e.Cancel(time.Now()))
}

func TestEntitlement_IsCurrent(t *testing.T) {
	sale := validSale(t)
	e, err := NewEntitlementFromSale(sale, sale.StartDate)
	require.NoError(t, err)

	assert.True(t, e.IsCurrent(e.StartDate))
	assert.True(t, e.IsCurrent(e.EndDate))
	assert.True(t, e.IsCurrent(e.StartDate.AddDate(0, 0, 10)))
	assert.False(t, e.IsCurrent(e.StartDate.Add(-time.Hour)))
	assert.False(t, e.IsCurrent(e.EndDate.Add(time.Hour)))

	require.NoError(t, e.Cancel(e.StartDate.AddDate(0, 0, 5)))
	assert.False(t, e.IsCurrent(e.StartDate.AddDate(0, 0, 10)))
}

func TestNewEntryLogRecord(t *testing.T) {
	memberID := uuid.New()
	occurredAt := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

	rec, err := NewEntryLogRecord(memberID, AccessTypeMember, AreaReception, SourcePOS, "payment CASH-1", occurredAt)
	require.NoError(t, err)
	assert.Equal(t, memberID, rec.MemberID)
	assert.Equal(t, "member", rec.AccessType)
	assert.Equal(t, "reception", rec.Area)
	assert.Equal(t, "POS", rec.Source)
	assert.Equal(t, occurredAt, rec.OccurredAt)

	_, err = NewEntryLogRecord(uuid.Nil, AccessTypeMember, AreaReception, SourcePOS, "", occurredAt)
	assert.Error(t, err)

	_, err = NewEntryLogRecord(memberID, "", AreaReception, SourcePOS, "", occurredAt)
	assert.Error(t, err)
}
