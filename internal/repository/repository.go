package repository

import (
	"context"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// CountOverlapping counts bookings for the stylist that intersect
	// [start, end) and are still live (PENDING/CONFIRMED/IN_PROGRESS).
	CountOverlapping(ctx context.Context, stylistID int32, start, end time.Time, excludeID int32) (int32, error)
	CountCompletedByStylist(ctx context.Context, stylistID int32) (int32, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	ListConfirmedStartedBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	ListCompletedHeldBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int32) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int32) error
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Property, int32, error)
	Search(ctx context.Context, metro string, page, pageSize int32) ([]domain.Property, int32, error)

	CreateChair(ctx context.Context, c *domain.Chair) error
	GetChairByID(ctx context.Context, id int32) (*domain.Chair, error)
	UpdateChair(ctx context.Context, c *domain.Chair) error
	ListChairs(ctx context.Context, propertyID int32) ([]domain.Chair, error)
}

type RentalRequestRepository interface {
	Create(ctx context.Context, rr *domain.RentalRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error)
	Update(ctx context.Context, rr *domain.RentalRequest) error
	ListByStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	ListApprovedStartingOn(ctx context.Context, date string) ([]domain.RentalRequest, error)
	ListActiveEndedBefore(ctx context.Context, date string) ([]domain.RentalRequest, error)
	ListPendingStartingBefore(ctx context.Context, date string) ([]domain.RentalRequest, error)
}

type LedgerRepository interface {
	CreateEntry(ctx context.Context, e *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error)
	GetSummary(ctx context.Context, userID int32) (*domain.LedgerSummary, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, f *domain.Favorite) error
	Delete(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) error
	Exists(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) (bool, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Favorite, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type HairHealthRepository interface {
	GetByUser(ctx context.Context, userID int32) (*domain.HairHealthProfile, error)
	Upsert(ctx context.Context, p *domain.HairHealthProfile) error
}

type LearningRepository interface {
	List(ctx context.Context, topic string, page, pageSize int32) ([]domain.LearningResource, int32, error)
	GetByID(ctx context.Context, id int32) (*domain.LearningResource, error)
}

type StylistContextRepository interface {
	Get(ctx context.Context, stylistID int32) (*domain.StylistContext, error)
	Upsert(ctx context.Context, sc *domain.StylistContext) error

	ListAvailability(ctx context.Context, stylistID int32) ([]domain.AvailabilityBlock, error)
	ReplaceAvailability(ctx context.Context, stylistID int32, blocks []domain.AvailabilityBlock) error
	ListBlockedDates(ctx context.Context, stylistID int32) ([]domain.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, b *domain.BlockedDate) error
	DeleteBlockedDate(ctx context.Context, id, stylistID int32) error
}
