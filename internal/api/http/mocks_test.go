package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, customerID int32, in service.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, customerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ListForCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingService) ListForStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, stylistID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, customerID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, customerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Reschedule(ctx context.Context, customerID, bookingID int32, newStart time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, customerID, bookingID, newStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Tip(ctx context.Context, customerID, bookingID, tipCents int32) (*domain.Booking, error) {
	args := m.Called(ctx, customerID, bookingID, tipCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) MarkArrived(ctx context.Context, stylistID, bookingID int32) error {
	return m.Called(ctx, stylistID, bookingID).Error(0)
}

func (m *MockBookingService) StartSession(ctx context.Context, stylistID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, stylistID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) CompleteSession(ctx context.Context, stylistID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, stylistID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}

func (m *MockLedgerService) Summary(ctx context.Context, userID int32) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockLedgerService) ListForBooking(ctx context.Context, userID, bookingID int32) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
