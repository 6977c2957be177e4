package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

func newLedgerService() (service.LedgerService, *MockLedgerRepo, *MockBookingRepo) {
	ledgerRepo := &MockLedgerRepo{}
	bookingRepo := &MockBookingRepo{}
	return service.NewLedgerService(ledgerRepo, bookingRepo), ledgerRepo, bookingRepo
}

func TestLedgerService_List(t *testing.T) {
	ctx := context.Background()
	svc, ledgerRepo, _ := newLedgerService()

	entries := []domain.LedgerEntry{
		{ID: 1, UserID: 2, AmountCents: -20000, Type: domain.LedgerEntryTypeEscrowHold},
		{ID: 2, UserID: 2, AmountCents: 15000, Type: domain.LedgerEntryTypeRefund},
	}
	ledgerRepo.On("ListByUser", ctx, int32(2), int32(1), int32(20)).Return(entries, int32(2), nil)

	got, total, err := svc.List(ctx, 2, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(-20000), got[0].AmountCents)
}

func TestLedgerService_Summary(t *testing.T) {
	ctx := context.Background()
	svc, ledgerRepo, _ := newLedgerService()

	ledgerRepo.On("GetSummary", ctx, int32(3)).Return(&domain.LedgerSummary{
		BalanceCents: 45000,
		HeldCents:    0,
		EarnedCents:  60000,
	}, nil)

	s, err := svc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(45000), s.BalanceCents)
	assert.Equal(t, int32(60000), s.EarnedCents)
}

func TestLedgerService_ListForBooking(t *testing.T) {
	ctx := context.Background()

	booking := &domain.Booking{
		ID:             7,
		CustomerID:     2,
		StylistID:      3,
		ScheduledStart: time.Now().Add(48 * time.Hour),
		Status:         domain.BookingStatusConfirmed,
		EscrowStatus:   domain.EscrowStatusHeld,
	}

	t.Run("PartyCanRead", func(t *testing.T) {
		svc, ledgerRepo, bookingRepo := newLedgerService()
		bookingRepo.On("GetByID", ctx, int32(7)).Return(booking, nil)
		bookingID := int32(7)
		ledgerRepo.On("ListByBooking", ctx, int32(7)).Return([]domain.LedgerEntry{
			{ID: 1, UserID: 2, BookingID: &bookingID, AmountCents: -20000, Type: domain.LedgerEntryTypeEscrowHold},
		}, nil)

		entries, err := svc.ListForBooking(ctx, 3, 7)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		svc, ledgerRepo, bookingRepo := newLedgerService()
		bookingRepo.On("GetByID", ctx, int32(7)).Return(booking, nil)

		entries, err := svc.ListForBooking(ctx, 99, 7)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, entries)
		ledgerRepo.AssertNotCalled(t, "ListByBooking", ctx, int32(7))
	})
}
