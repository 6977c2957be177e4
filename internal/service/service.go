package service

import (
	"context"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, role domain.UserRole, name, email, phone, password string) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID int32) (*domain.User, error)
}

// TokenPair carries a session's credentials: the JWTs set as cookies and
// the CSRF token the client must echo on state-changing requests.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	CSRFToken    string
	SessionID    string
}

type CreateBookingInput struct {
	StylistID       int32
	ChairID         *int32
	ServiceName     string
	LocationMode    domain.LocationMode
	Address         string
	ScheduledStart  time.Time
	DurationMinutes int32
	AmountCents     int32
	Notes           string
}

type BookingService interface {
	Create(ctx context.Context, customerID int32, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, userID, bookingID int32) (*domain.Booking, error)
	ListForCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListForStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ConfirmPayment(ctx context.Context, customerID, bookingID int32) (*domain.Booking, error)
	Cancel(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error)
	Reschedule(ctx context.Context, customerID, bookingID int32, newStart time.Time) (*domain.Booking, error)
	Tip(ctx context.Context, customerID, bookingID, tipCents int32) (*domain.Booking, error)
	MarkArrived(ctx context.Context, stylistID, bookingID int32) error
	StartSession(ctx context.Context, stylistID, bookingID int32) (*domain.Booking, error)
	CompleteSession(ctx context.Context, stylistID, bookingID int32) (*domain.Booking, error)
}

type PropertyService interface {
	Create(ctx context.Context, ownerID int32, p *domain.Property) error
	Get(ctx context.Context, id int32) (*domain.Property, error)
	Update(ctx context.Context, ownerID int32, p *domain.Property) error
	Delete(ctx context.Context, ownerID, id int32) error
	ListMine(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Property, int32, error)
	Search(ctx context.Context, metro string, page, pageSize int32) ([]domain.Property, int32, error)
	AddChair(ctx context.Context, ownerID int32, c *domain.Chair) error
	UpdateChair(ctx context.Context, ownerID int32, c *domain.Chair) error
	ListChairs(ctx context.Context, propertyID int32) ([]domain.Chair, error)
}

type RentalService interface {
	CreateRequest(ctx context.Context, stylistID, chairID int32, startDate, endDate, message string) (*domain.RentalRequest, error)
	Approve(ctx context.Context, ownerID, requestID int32, note string) (*domain.RentalRequest, error)
	Reject(ctx context.Context, ownerID, requestID int32, note string) (*domain.RentalRequest, error)
	Cancel(ctx context.Context, stylistID, requestID int32) (*domain.RentalRequest, error)
	ListForStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	ListForOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	ActivateDue(ctx context.Context, today string) (int, error)
	CompleteEnded(ctx context.Context, today string) (int, error)
	ExpireStale(ctx context.Context, today string) (int, error)
}

type LedgerService interface {
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	Summary(ctx context.Context, userID int32) (*domain.LedgerSummary, error)
	ListForBooking(ctx context.Context, userID, bookingID int32) ([]domain.LedgerEntry, error)
}

type FavoriteService interface {
	Add(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) (*domain.Favorite, error)
	Remove(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) error
	List(ctx context.Context, userID int32) ([]domain.Favorite, error)
}

type NotificationService interface {
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type HairHealthService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.HairHealthProfile, error)
	SaveProfile(ctx context.Context, userID int32, p *domain.HairHealthProfile) error
}

type LearningService interface {
	List(ctx context.Context, topic string, page, pageSize int32) ([]domain.LearningResource, int32, error)
	Get(ctx context.Context, id int32) (*domain.LearningResource, error)
}

type StylistContextService interface {
	Get(ctx context.Context, stylistID int32) (*domain.StylistContext, error)
	Update(ctx context.Context, stylistID int32, sc *domain.StylistContext) error
	SetAccepting(ctx context.Context, stylistID int32, accepting bool) error
}

type CalendarService interface {
	GetAvailability(ctx context.Context, stylistID int32) ([]domain.AvailabilityBlock, error)
	SetAvailability(ctx context.Context, stylistID int32, blocks []domain.AvailabilityBlock) error
	ListBlockedDates(ctx context.Context, stylistID int32) ([]domain.BlockedDate, error)
	AddBlockedDate(ctx context.Context, stylistID int32, date, reason string) (*domain.BlockedDate, error)
	RemoveBlockedDate(ctx context.Context, stylistID, id int32) error
}

type EmailService interface {
	SendBookingConfirmed(ctx context.Context, email, customerName, serviceName string, start time.Time) error
	SendBookingCancelled(ctx context.Context, email, serviceName, cancelledBy string, refundCents int32) error
	SendAppointmentReminder(ctx context.Context, email, serviceName string, start time.Time) error
	SendRentalRequestNotification(ctx context.Context, ownerEmail, stylistName, chairName string) error
	SendRentalDecisionNotification(ctx context.Context, stylistEmail, chairName, decision, note string) error
}
