package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type bookingMocks struct {
	bookingRepo *MockBookingRepo
	userRepo    *MockUserRepo
	scRepo      *MockStylistContextRepo
	ledgerRepo  *MockLedgerRepo
	noteRepo    *MockNotificationRepo
	emailSvc    *MockEmailService
	publisher   *MockPublisher
}

func newBookingService() (service.BookingService, *bookingMocks) {
	m := &bookingMocks{
		bookingRepo: new(MockBookingRepo),
		userRepo:    new(MockUserRepo),
		scRepo:      new(MockStylistContextRepo),
		ledgerRepo:  new(MockLedgerRepo),
		noteRepo:    new(MockNotificationRepo),
		emailSvc:    new(MockEmailService),
		publisher:   new(MockPublisher),
	}
	svc := service.NewBookingService(m.bookingRepo, m.userRepo, m.scRepo, m.ledgerRepo, m.noteRepo, m.emailSvc, m.publisher)
	return svc, m
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	stylist := &domain.User{ID: 2, Role: domain.UserRoleStylist, Name: "Sasha", Email: "sasha@test.com"}
	start := time.Now().Add(48 * time.Hour)
	in := service.CreateBookingInput{
		StylistID:       2,
		ServiceName:     "Silk press",
		LocationMode:    domain.LocationModeMobile,
		Address:         "12 Peachtree St",
		ScheduledStart:  start,
		DurationMinutes: 90,
		AmountCents:     12000,
	}

	t.Run("Success", func(t *testing.T) {
		svc, m := newBookingService()
		m.userRepo.On("GetByID", ctx, int32(2)).Return(stylist, nil)
		m.scRepo.On("Get", ctx, int32(2)).Return(nil, domain.ErrNotFound)
		m.bookingRepo.On("CountOverlapping", ctx, int32(2), start, start.Add(90*time.Minute), int32(0)).Return(int32(0), nil)
		m.scRepo.On("ListBlockedDates", ctx, int32(2)).Return([]domain.BlockedDate{}, nil)
		m.scRepo.On("ListAvailability", ctx, int32(2)).Return([]domain.AvailabilityBlock{}, nil)
		m.bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.CustomerID == 1 &&
				b.Status == domain.BookingStatusPending &&
				b.EscrowStatus == domain.EscrowStatusUnfunded &&
				b.AmountCents == 12000
		})).Return(nil)
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		b, err := svc.Create(ctx, 1, in)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		m.bookingRepo.AssertExpectations(t)
	})

	t.Run("StylistNotAccepting", func(t *testing.T) {
		svc, m := newBookingService()
		m.userRepo.On("GetByID", ctx, int32(2)).Return(stylist, nil)
		m.scRepo.On("Get", ctx, int32(2)).Return(&domain.StylistContext{StylistID: 2, AcceptingBookings: false}, nil)

		_, err := svc.Create(ctx, 1, in)
		assert.ErrorIs(t, err, domain.ErrNotAccepting)
	})

	t.Run("ScheduleConflict", func(t *testing.T) {
		svc, m := newBookingService()
		m.userRepo.On("GetByID", ctx, int32(2)).Return(stylist, nil)
		m.scRepo.On("Get", ctx, int32(2)).Return(nil, domain.ErrNotFound)
		m.bookingRepo.On("CountOverlapping", ctx, int32(2), start, start.Add(90*time.Minute), int32(0)).Return(int32(1), nil)

		_, err := svc.Create(ctx, 1, in)
		assert.ErrorIs(t, err, domain.ErrScheduleConflict)
	})

	t.Run("BlockedDate", func(t *testing.T) {
		svc, m := newBookingService()
		m.userRepo.On("GetByID", ctx, int32(2)).Return(stylist, nil)
		m.scRepo.On("Get", ctx, int32(2)).Return(nil, domain.ErrNotFound)
		m.bookingRepo.On("CountOverlapping", ctx, int32(2), start, start.Add(90*time.Minute), int32(0)).Return(int32(0), nil)
		m.scRepo.On("ListBlockedDates", ctx, int32(2)).Return([]domain.BlockedDate{
			{StylistID: 2, Date: start.Format("2006-01-02")},
		}, nil)

		_, err := svc.Create(ctx, 1, in)
		assert.ErrorIs(t, err, domain.ErrScheduleConflict)
	})

	t.Run("PastStart", func(t *testing.T) {
		svc, _ := newBookingService()
		past := in
		past.ScheduledStart = time.Now().Add(-time.Hour)
		_, err := svc.Create(ctx, 1, past)
		assert.Error(t, err)
	})
}

func TestBookingService_ConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("HoldsEscrowAndConfirms", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{
			ID: 10, CustomerID: 1, StylistID: 2, ServiceName: "Braids",
			AmountCents:  20000,
			Status:       domain.BookingStatusPending,
			EscrowStatus: domain.EscrowStatusUnfunded,
		}
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(b, nil)
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 1 && e.AmountCents == -20000 && e.Type == domain.LedgerEntryTypeEscrowHold
		})).Return(nil)
		m.bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusConfirmed && b.EscrowStatus == domain.EscrowStatusHeld
		})).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		m.userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Name: "Dana", Email: "dana@test.com"}, nil)
		m.emailSvc.On("SendBookingConfirmed", ctx, "dana@test.com", "Dana", "Braids", mock.Anything).Return(nil)
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		out, err := svc.ConfirmPayment(ctx, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.EscrowStatusHeld, out.EscrowStatus)
		m.ledgerRepo.AssertExpectations(t)
	})

	t.Run("NotPayableTwice", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{ID: 10, CustomerID: 1, Status: domain.BookingStatusConfirmed, EscrowStatus: domain.EscrowStatusHeld}
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(b, nil)

		_, err := svc.ConfirmPayment(ctx, 1, 10)
		assert.ErrorIs(t, err, domain.ErrBookingNotPayable)
	})

	t.Run("WrongCustomer", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{ID: 10, CustomerID: 1, Status: domain.BookingStatusPending, EscrowStatus: domain.EscrowStatusUnfunded}
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(b, nil)

		_, err := svc.ConfirmPayment(ctx, 99, 10)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func heldBooking(startIn time.Duration) *domain.Booking {
	return &domain.Booking{
		ID: 20, CustomerID: 1, StylistID: 2, ServiceName: "Color",
		AmountCents:    10000,
		ScheduledStart: time.Now().Add(startIn),
		Status:         domain.BookingStatusConfirmed,
		EscrowStatus:   domain.EscrowStatusHeld,
	}
}

func stubCancelSidecars(ctx context.Context, m *bookingMocks) {
	m.publisher.On("Publish", ctx, mock.Anything).Return(nil)
	m.userRepo.On("GetByID", ctx, mock.Anything).Return(&domain.User{ID: 2, Email: "x@test.com"}, nil)
	m.emailSvc.On("SendBookingCancelled", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.noteRepo.On("Create", ctx, mock.Anything).Return(nil)
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("FullRefundBefore24h", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(30 * time.Hour)
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 1 && e.AmountCents == 10000 && e.Type == domain.LedgerEntryTypeRefund
		})).Return(nil)
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		stubCancelSidecars(ctx, m)

		out, err := svc.Cancel(ctx, 1, 20, "changed plans")
		assert.NoError(t, err)
		assert.Equal(t, int32(10000), out.RefundCents)
		assert.Equal(t, domain.EscrowStatusRefunded, out.EscrowStatus)
		m.ledgerRepo.AssertExpectations(t)
	})

	t.Run("SplitRefundBetween12And24h", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(15 * time.Hour)
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 1 && e.AmountCents == 7500 && e.Type == domain.LedgerEntryTypeRefund
		})).Return(nil).Once()
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 2 && e.AmountCents == 2500 && e.Type == domain.LedgerEntryTypeEscrowRelease
		})).Return(nil).Once()
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		stubCancelSidecars(ctx, m)

		out, err := svc.Cancel(ctx, 1, 20, "")
		assert.NoError(t, err)
		assert.Equal(t, int32(7500), out.RefundCents)
		assert.Equal(t, domain.EscrowStatusSplit, out.EscrowStatus)
		m.ledgerRepo.AssertExpectations(t)
	})

	t.Run("NoRefundInsideTwoHours", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(time.Hour)
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 2 && e.AmountCents == 10000 && e.Type == domain.LedgerEntryTypeEscrowRelease
		})).Return(nil).Once()
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		stubCancelSidecars(ctx, m)

		out, err := svc.Cancel(ctx, 1, 20, "")
		assert.NoError(t, err)
		assert.Equal(t, int32(0), out.RefundCents)
		assert.Equal(t, domain.EscrowStatusReleased, out.EscrowStatus)
	})

	t.Run("StylistCancelAlwaysFullRefund", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(30 * time.Minute) // inside the no-refund window for customers
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 1 && e.AmountCents == 10000 && e.Type == domain.LedgerEntryTypeRefund
		})).Return(nil).Once()
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		stubCancelSidecars(ctx, m)

		out, err := svc.Cancel(ctx, 2, 20, "double booked")
		assert.NoError(t, err)
		assert.Equal(t, int32(10000), out.RefundCents)
		assert.Equal(t, domain.EscrowStatusRefunded, out.EscrowStatus)
	})

	t.Run("UnfundedCancelMovesNoMoney", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(30 * time.Hour)
		b.Status = domain.BookingStatusPending
		b.EscrowStatus = domain.EscrowStatusUnfunded
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		stubCancelSidecars(ctx, m)

		out, err := svc.Cancel(ctx, 1, 20, "")
		assert.NoError(t, err)
		assert.Equal(t, int32(0), out.RefundCents)
		assert.Equal(t, domain.EscrowStatusUnfunded, out.EscrowStatus)
		m.ledgerRepo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
	})

	t.Run("CompletedNotCancellable", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(time.Hour)
		b.Status = domain.BookingStatusCompleted
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)

		_, err := svc.Cancel(ctx, 1, 20, "")
		assert.ErrorIs(t, err, domain.ErrBookingNotOpen)
	})
}

func TestBookingService_Reschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(30 * time.Hour)
		b.DurationMinutes = 60
		newStart := time.Now().Add(72 * time.Hour)
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)
		m.bookingRepo.On("CountOverlapping", ctx, int32(2), newStart, newStart.Add(time.Hour), int32(20)).Return(int32(0), nil)
		m.scRepo.On("ListBlockedDates", ctx, int32(2)).Return([]domain.BlockedDate{}, nil)
		m.scRepo.On("ListAvailability", ctx, int32(2)).Return([]domain.AvailabilityBlock{}, nil)
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		out, err := svc.Reschedule(ctx, 1, 20, newStart)
		assert.NoError(t, err)
		assert.True(t, out.ScheduledStart.Equal(newStart))
	})

	t.Run("TooLate", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(90 * time.Minute)
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)

		_, err := svc.Reschedule(ctx, 1, 20, time.Now().Add(72*time.Hour))
		assert.ErrorIs(t, err, domain.ErrRescheduleTooLate)
	})

	t.Run("StylistCannotReschedule", func(t *testing.T) {
		svc, m := newBookingService()
		b := heldBooking(30 * time.Hour)
		m.bookingRepo.On("GetByID", ctx, int32(20)).Return(b, nil)

		_, err := svc.Reschedule(ctx, 2, 20, time.Now().Add(72*time.Hour))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestBookingService_Tip(t *testing.T) {
	ctx := context.Background()

	t.Run("PairsDebitAndCredit", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{ID: 30, CustomerID: 1, StylistID: 2, Status: domain.BookingStatusCompleted}
		m.bookingRepo.On("GetByID", ctx, int32(30)).Return(b, nil)
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 1 && e.AmountCents == -1500 && e.Type == domain.LedgerEntryTypeTip
		})).Return(nil).Once()
		m.ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.UserID == 2 && e.AmountCents == 1500 && e.Type == domain.LedgerEntryTypeTip
		})).Return(nil).Once()
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		out, err := svc.Tip(ctx, 1, 30, 1500)
		assert.NoError(t, err)
		assert.Equal(t, int32(1500), out.TipCents)
		m.ledgerRepo.AssertExpectations(t)
	})

	t.Run("BeforeCompletion", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{ID: 30, CustomerID: 1, StylistID: 2, Status: domain.BookingStatusInProgress}
		m.bookingRepo.On("GetByID", ctx, int32(30)).Return(b, nil)

		_, err := svc.Tip(ctx, 1, 30, 1500)
		assert.ErrorIs(t, err, domain.ErrTipBeforeComplete)
	})
}

func TestBookingService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("StartThenComplete", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{ID: 40, CustomerID: 1, StylistID: 2, ServiceName: "Locs", Status: domain.BookingStatusConfirmed, EscrowStatus: domain.EscrowStatusHeld}
		m.bookingRepo.On("GetByID", ctx, int32(40)).Return(b, nil)
		m.bookingRepo.On("Update", ctx, mock.Anything).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		out, err := svc.StartSession(ctx, 2, 40)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusInProgress, out.Status)
		assert.NotNil(t, out.StartedOn)

		out, err = svc.CompleteSession(ctx, 2, 40)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, out.Status)
		assert.NotNil(t, out.CompletedOn)
	})

	t.Run("StartRequiresConfirmed", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{ID: 40, StylistID: 2, Status: domain.BookingStatusPending}
		m.bookingRepo.On("GetByID", ctx, int32(40)).Return(b, nil)

		_, err := svc.StartSession(ctx, 2, 40)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("MarkArrivedPublishesOnly", func(t *testing.T) {
		svc, m := newBookingService()
		b := &domain.Booking{ID: 40, StylistID: 2, Status: domain.BookingStatusConfirmed}
		m.bookingRepo.On("GetByID", ctx, int32(40)).Return(b, nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		err := svc.MarkArrived(ctx, 2, 40)
		assert.NoError(t, err)
		assert.Len(t, m.publisher.Events, 1)
		assert.Equal(t, "arrived", m.publisher.Events[0].Type)
		m.bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
