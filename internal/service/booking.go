package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/live"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/metrics"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/policy"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	scRepo      repository.StylistContextRepository
	ledgerRepo  repository.LedgerRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	publisher   live.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	scRepo repository.StylistContextRepository,
	ledgerRepo repository.LedgerRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	publisher live.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		scRepo:      scRepo,
		ledgerRepo:  ledgerRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		publisher:   publisher,
	}
}

func (s *bookingService) Create(ctx context.Context, customerID int32, in CreateBookingInput) (*domain.Booking, error) {
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if in.AmountCents <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !in.ScheduledStart.After(time.Now()) {
		return nil, fmt.Errorf("appointment must be in the future")
	}

	// Stylist must exist and be taking bookings. A stylist with no
	// context record yet is treated as accepting.
	if _, err := s.userRepo.GetByID(ctx, in.StylistID); err != nil {
		return nil, err
	}
	sc, err := s.scRepo.Get(ctx, in.StylistID)
	if err == nil && !sc.AcceptingBookings {
		return nil, domain.ErrNotAccepting
	}

	if err := s.checkAvailability(ctx, in.StylistID, in.ScheduledStart, in.DurationMinutes, 0); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		CustomerID:      customerID,
		StylistID:       in.StylistID,
		ChairID:         in.ChairID,
		ServiceName:     in.ServiceName,
		LocationMode:    in.LocationMode,
		Address:         in.Address,
		ScheduledStart:  in.ScheduledStart,
		DurationMinutes: in.DurationMinutes,
		AmountCents:     in.AmountCents,
		Status:          domain.BookingStatusPending,
		EscrowStatus:    domain.EscrowStatusUnfunded,
		Notes:           in.Notes,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.BookingsCreated.Inc()

	s.notify(ctx, b.StylistID, "New Booking Request",
		fmt.Sprintf("New %s booking for %s", b.ServiceName, b.ScheduledStart.Format(time.RFC1123)),
		"BOOKING_CREATED", b.ID)

	return b, nil
}

// checkAvailability enforces the stylist's calendar: no overlap with live
// bookings, no blocked dates, and inside a weekly window when the stylist
// has defined any.
func (s *bookingService) checkAvailability(ctx context.Context, stylistID int32, start time.Time, durationMinutes, excludeID int32) error {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	overlaps, err := s.bookingRepo.CountOverlapping(ctx, stylistID, start, end, excludeID)
	if err != nil {
		return err
	}
	if overlaps > 0 {
		return domain.ErrScheduleConflict
	}

	blocked, err := s.scRepo.ListBlockedDates(ctx, stylistID)
	if err != nil {
		return err
	}
	day := start.Format("2006-01-02")
	for _, bd := range blocked {
		if bd.Date == day {
			return domain.ErrScheduleConflict
		}
	}

	windows, err := s.scRepo.ListAvailability(ctx, stylistID)
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	hhmm := start.Format("15:04")
	endHHMM := end.Format("15:04")
	for _, w := range windows {
		if w.Weekday == int32(start.Weekday()) && w.StartTime <= hhmm && endHHMM <= w.EndTime {
			return nil
		}
	}
	return domain.ErrScheduleConflict
}

func (s *bookingService) Get(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != userID && b.StylistID != userID {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

func (s *bookingService) ListForCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *bookingService) ListForStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByStylist(ctx, stylistID, status, page, pageSize)
}

func (s *bookingService) ConfirmPayment(ctx context.Context, customerID, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	if b.Status != domain.BookingStatusPending || b.EscrowStatus != domain.EscrowStatusUnfunded {
		return nil, domain.ErrBookingNotPayable
	}

	hold := &domain.LedgerEntry{
		UserID:      customerID,
		BookingID:   &b.ID,
		AmountCents: -b.AmountCents,
		Type:        domain.LedgerEntryTypeEscrowHold,
		Description: fmt.Sprintf("Escrow hold for booking %d (%s)", b.ID, b.ServiceName),
	}
	if err := s.ledgerRepo.CreateEntry(ctx, hold); err != nil {
		return nil, fmt.Errorf("escrow hold failed: %w", err)
	}

	b.Status = domain.BookingStatusConfirmed
	b.EscrowStatus = domain.EscrowStatusHeld
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, b, live.EventStatusChanged, map[string]string{"status": string(b.Status)})

	customer, _ := s.userRepo.GetByID(ctx, b.CustomerID)
	if customer != nil {
		_ = s.emailSvc.SendBookingConfirmed(ctx, customer.Email, customer.Name, b.ServiceName, b.ScheduledStart)
	}
	s.notify(ctx, b.StylistID, "Booking Confirmed",
		fmt.Sprintf("Booking %d is confirmed and funded", b.ID), "BOOKING_CONFIRMED", b.ID)

	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != userID && b.StylistID != userID {
		return nil, domain.ErrForbidden
	}
	if !b.Cancellable() {
		return nil, domain.ErrBookingNotOpen
	}

	var refund, forfeit int32
	pct := int32(100)
	if b.EscrowStatus == domain.EscrowStatusHeld {
		if userID == b.StylistID {
			// Stylist-initiated cancellation always makes the
			// customer whole.
			refund, forfeit = b.AmountCents, 0
		} else {
			until := time.Until(b.ScheduledStart)
			pct = policy.RefundPercent(until)
			refund, forfeit = policy.CancellationSplit(b.AmountCents, until)
		}

		if refund > 0 {
			entry := &domain.LedgerEntry{
				UserID:      b.CustomerID,
				BookingID:   &b.ID,
				AmountCents: refund,
				Type:        domain.LedgerEntryTypeRefund,
				Description: fmt.Sprintf("Cancellation refund for booking %d", b.ID),
			}
			if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
				return nil, err
			}
		}
		if forfeit > 0 {
			entry := &domain.LedgerEntry{
				UserID:      b.StylistID,
				BookingID:   &b.ID,
				AmountCents: forfeit,
				Type:        domain.LedgerEntryTypeEscrowRelease,
				Description: fmt.Sprintf("Late cancellation payout for booking %d", b.ID),
			}
			if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
				return nil, err
			}
		}

		switch {
		case forfeit == 0:
			b.EscrowStatus = domain.EscrowStatusRefunded
		case refund == 0:
			b.EscrowStatus = domain.EscrowStatusReleased
		default:
			b.EscrowStatus = domain.EscrowStatusSplit
		}
	}

	b.Status = domain.BookingStatusCancelled
	b.CancelledBy = &userID
	b.CancelReason = reason
	b.RefundCents = refund
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.WithLabelValues(strconv.Itoa(int(pct))).Inc()
	metrics.RefundCents.Add(float64(refund))

	s.publish(ctx, b, live.EventStatusChanged, map[string]string{
		"status":       string(b.Status),
		"refund_cents": strconv.Itoa(int(refund)),
	})

	cancelledBy := "customer"
	counterparty := b.StylistID
	if userID == b.StylistID {
		cancelledBy = "stylist"
		counterparty = b.CustomerID
	}
	if other, err := s.userRepo.GetByID(ctx, counterparty); err == nil {
		_ = s.emailSvc.SendBookingCancelled(ctx, other.Email, b.ServiceName, cancelledBy, refund)
	}
	s.notify(ctx, counterparty, "Booking Cancelled",
		fmt.Sprintf("Booking %d was cancelled by the %s (%s refunded)", b.ID, cancelledBy, policy.FormatCents(refund)),
		"BOOKING_CANCELLED", b.ID)

	return b, nil
}

func (s *bookingService) Reschedule(ctx context.Context, customerID, bookingID int32, newStart time.Time) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	if !b.Cancellable() {
		return nil, domain.ErrBookingNotOpen
	}
	if time.Until(b.ScheduledStart) < 2*time.Hour || time.Until(newStart) < 2*time.Hour {
		return nil, domain.ErrRescheduleTooLate
	}

	if err := s.checkAvailability(ctx, b.StylistID, newStart, b.DurationMinutes, b.ID); err != nil {
		return nil, err
	}

	b.ScheduledStart = newStart
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, b, live.EventStatusChanged, map[string]string{
		"status":          string(b.Status),
		"scheduled_start": newStart.Format(time.RFC3339),
	})
	s.notify(ctx, b.StylistID, "Booking Rescheduled",
		fmt.Sprintf("Booking %d moved to %s", b.ID, newStart.Format(time.RFC1123)),
		"BOOKING_RESCHEDULED", b.ID)

	return b, nil
}

func (s *bookingService) Tip(ctx context.Context, customerID, bookingID, tipCents int32) (*domain.Booking, error) {
	if tipCents <= 0 {
		return nil, fmt.Errorf("tip must be positive")
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	if b.Status != domain.BookingStatusCompleted {
		return nil, domain.ErrTipBeforeComplete
	}

	debit := &domain.LedgerEntry{
		UserID:      b.CustomerID,
		BookingID:   &b.ID,
		AmountCents: -tipCents,
		Type:        domain.LedgerEntryTypeTip,
		Description: fmt.Sprintf("Tip for booking %d", b.ID),
	}
	if err := s.ledgerRepo.CreateEntry(ctx, debit); err != nil {
		return nil, err
	}
	credit := &domain.LedgerEntry{
		UserID:      b.StylistID,
		BookingID:   &b.ID,
		AmountCents: tipCents,
		Type:        domain.LedgerEntryTypeTip,
		Description: fmt.Sprintf("Tip received for booking %d", b.ID),
	}
	if err := s.ledgerRepo.CreateEntry(ctx, credit); err != nil {
		return nil, err
	}

	b.TipCents += tipCents
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.notify(ctx, b.StylistID, "Tip Received",
		fmt.Sprintf("You received a %s tip for booking %d", policy.FormatCents(tipCents), b.ID),
		"TIP_RECEIVED", b.ID)

	return b, nil
}

func (s *bookingService) MarkArrived(ctx context.Context, stylistID, bookingID int32) error {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.StylistID != stylistID {
		return domain.ErrForbidden
	}
	if b.Status != domain.BookingStatusConfirmed && b.Status != domain.BookingStatusInProgress {
		return domain.ErrInvalidStatus
	}

	s.publish(ctx, b, live.EventArrived, nil)
	return nil
}

func (s *bookingService) StartSession(ctx context.Context, stylistID, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StylistID != stylistID {
		return nil, domain.ErrForbidden
	}
	if b.Status != domain.BookingStatusConfirmed {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now()
	b.Status = domain.BookingStatusInProgress
	b.StartedOn = &now
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, b, live.EventStatusChanged, map[string]string{"status": string(b.Status)})
	s.publish(ctx, b, live.EventProgress, map[string]string{"stage": "session_started"})
	return b, nil
}

func (s *bookingService) CompleteSession(ctx context.Context, stylistID, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StylistID != stylistID {
		return nil, domain.ErrForbidden
	}
	if b.Status != domain.BookingStatusInProgress {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now()
	b.Status = domain.BookingStatusCompleted
	b.CompletedOn = &now
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, b, live.EventSessionEnded, nil)
	s.notify(ctx, b.CustomerID, "Session Complete",
		fmt.Sprintf("Your %s session is complete", b.ServiceName), "BOOKING_COMPLETED", b.ID)

	return b, nil
}

func (s *bookingService) publish(ctx context.Context, b *domain.Booking, eventType string, data map[string]string) {
	ev := live.Event{
		BookingID: b.ID,
		Type:      eventType,
		Data:      data,
		At:        time.Now(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		// Live updates are best effort; the booking record is the
		// source of truth.
		return
	}
}

func (s *bookingService) notify(ctx context.Context, userID int32, title, message, kind string, bookingID int32) {
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       kind,
			"booking_id": strconv.Itoa(int(bookingID)),
		},
	})
}
