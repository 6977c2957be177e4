package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/live"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) ListByStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, stylistID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) CountOverlapping(ctx context.Context, stylistID int32, start, end time.Time, excludeID int32) (int32, error) {
	args := m.Called(ctx, stylistID, start, end, excludeID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockBookingRepo) CountCompletedByStylist(ctx context.Context, stylistID int32) (int32, error) {
	args := m.Called(ctx, stylistID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockBookingRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListConfirmedStartedBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListCompletedHeldBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockPropertyRepo struct{ mock.Mock }

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepo) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPropertyRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Property, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Property), args.Get(1).(int32), args.Error(2)
}

func (m *MockPropertyRepo) Search(ctx context.Context, metro string, page, pageSize int32) ([]domain.Property, int32, error) {
	args := m.Called(ctx, metro, page, pageSize)
	return args.Get(0).([]domain.Property), args.Get(1).(int32), args.Error(2)
}

func (m *MockPropertyRepo) CreateChair(ctx context.Context, c *domain.Chair) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockPropertyRepo) GetChairByID(ctx context.Context, id int32) (*domain.Chair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chair), args.Error(1)
}

func (m *MockPropertyRepo) UpdateChair(ctx context.Context, c *domain.Chair) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockPropertyRepo) ListChairs(ctx context.Context, propertyID int32) ([]domain.Chair, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Chair), args.Error(1)
}

type MockRentalRepo struct{ mock.Mock }

func (m *MockRentalRepo) Create(ctx context.Context, rr *domain.RentalRequest) error {
	return m.Called(ctx, rr).Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

func (m *MockRentalRepo) Update(ctx context.Context, rr *domain.RentalRequest) error {
	return m.Called(ctx, rr).Error(0)
}

func (m *MockRentalRepo) ListByStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	args := m.Called(ctx, stylistID, status, page, pageSize)
	return args.Get(0).([]domain.RentalRequest), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.RentalRequest), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) ListApprovedStartingOn(ctx context.Context, date string) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}

func (m *MockRentalRepo) ListActiveEndedBefore(ctx context.Context, date string) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}

func (m *MockRentalRepo) ListPendingStartingBefore(ctx context.Context, date string) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}

type MockLedgerRepo struct{ mock.Mock }

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockLedgerRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}

func (m *MockLedgerRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepo) GetSummary(ctx context.Context, userID int32) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

type MockFavoriteRepo struct{ mock.Mock }

func (m *MockFavoriteRepo) Create(ctx context.Context, f *domain.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFavoriteRepo) Delete(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) error {
	return m.Called(ctx, userID, kind, targetID).Error(0)
}

func (m *MockFavoriteRepo) Exists(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) (bool, error) {
	args := m.Called(ctx, userID, kind, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockStylistContextRepo struct{ mock.Mock }

func (m *MockStylistContextRepo) Get(ctx context.Context, stylistID int32) (*domain.StylistContext, error) {
	args := m.Called(ctx, stylistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StylistContext), args.Error(1)
}

func (m *MockStylistContextRepo) Upsert(ctx context.Context, sc *domain.StylistContext) error {
	return m.Called(ctx, sc).Error(0)
}

func (m *MockStylistContextRepo) ListAvailability(ctx context.Context, stylistID int32) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, stylistID)
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}

func (m *MockStylistContextRepo) ReplaceAvailability(ctx context.Context, stylistID int32, blocks []domain.AvailabilityBlock) error {
	return m.Called(ctx, stylistID, blocks).Error(0)
}

func (m *MockStylistContextRepo) ListBlockedDates(ctx context.Context, stylistID int32) ([]domain.BlockedDate, error) {
	args := m.Called(ctx, stylistID)
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}

func (m *MockStylistContextRepo) CreateBlockedDate(ctx context.Context, b *domain.BlockedDate) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockStylistContextRepo) DeleteBlockedDate(ctx context.Context, id, stylistID int32) error {
	return m.Called(ctx, id, stylistID).Error(0)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, email, customerName, serviceName string, start time.Time) error {
	return m.Called(ctx, email, customerName, serviceName, start).Error(0)
}

func (m *MockEmailService) SendBookingCancelled(ctx context.Context, email, serviceName, cancelledBy string, refundCents int32) error {
	return m.Called(ctx, email, serviceName, cancelledBy, refundCents).Error(0)
}

func (m *MockEmailService) SendAppointmentReminder(ctx context.Context, email, serviceName string, start time.Time) error {
	return m.Called(ctx, email, serviceName, start).Error(0)
}

func (m *MockEmailService) SendRentalRequestNotification(ctx context.Context, ownerEmail, stylistName, chairName string) error {
	return m.Called(ctx, ownerEmail, stylistName, chairName).Error(0)
}

func (m *MockEmailService) SendRentalDecisionNotification(ctx context.Context, stylistEmail, chairName, decision, note string) error {
	return m.Called(ctx, stylistEmail, chairName, decision, note).Error(0)
}

type MockPublisher struct {
	mock.Mock
	Events []live.Event
}

func (m *MockPublisher) Publish(ctx context.Context, ev live.Event) error {
	m.Events = append(m.Events, ev)
	return m.Called(ctx, ev).Error(0)
}
