package membership

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentCode(t *testing.T) {
	code := NewPaymentCode()
	assert.True(t, strings.HasPrefix(code, "PAY-"))
	assert.Len(t, code, 14)
	assert.Equal(t, strings.ToUpper(code), code)

	// Codes are random; two fresh codes must differ.
	assert.NotEqual(t, code, NewPaymentCode())
}

func TestNewPaymentNotification(t *testing.T) {
	memberID := uuid.New()
	saleID := uuid.New()

	n, err := NewPaymentNotification(memberID, &saleID, decimal.NewFromInt(350), "Pending cash payment of 350.00")
	require.NoError(t, err)
	assert.Equal(t, memberID, n.MemberID)
	require.NotNil(t, n.SaleID)
	assert.Equal(t, saleID, *n.SaleID)
	assert.Equal(t, SubjectPendingPayment, n.Subject)
	assert.False(t, n.Answered)
	assert.False(t, n.Read)
	assert.Nil(t, n.ResolvedAt)
	assert.True(t, n.IsPending())
}

func TestNewPaymentNotification_Validation(t *testing.T) {
	_, err := NewPaymentNotification(uuid.Nil, nil, decimal.NewFromInt(10), "")
	assert.Error(t, err)

	_, err = NewPaymentNotification(uuid.New(), nil, decimal.NewFromInt(-1), "")
	assert.Error(t, err)
}

func TestPaymentNotification_MarkAnswered(t *testing.T) {
	n, err := NewPaymentNotification(uuid.New(), nil, decimal.NewFromInt(100), "")
	require.NoError(t, err)

	resolvedAt := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	require.NoError(t, n.MarkAnswered(resolvedAt))
	assert.True(t, n.Answered)
	assert.True(t, n.Read)
	require.NotNil(t, n.ResolvedAt)
	assert.Equal(t, resolvedAt, *n.ResolvedAt)

	// Answering twice is rejected; the first resolution stands.
	err = n.MarkAnswered(resolvedAt.Add(time.Hour))
	assert.ErrorIs(t, err, shared.ErrAlreadyResolved)
	assert.Equal(t, resolvedAt, *n.ResolvedAt)
}

func TestNewAcknowledgementNotification(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	ack, err := NewAcknowledgementNotification(uuid.New(), "CASH-20260302103000", at)
	require.NoError(t, err)

	// Born answered so the confirmation workflow can never pick it up.
	assert.True(t, ack.Answered)
	assert.True(t, ack.Read)
	assert.Equal(t, SubjectPaymentConfirmed, ack.Subject)
	assert.Contains(t, ack.Body, "CASH-20260302103000")
	require.NotNil(t, ack.ResolvedAt)
	assert.Equal(t, at, *ack.ResolvedAt)
}
