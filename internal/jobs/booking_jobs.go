package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/live"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
)

// ExpireUnpaidBookings expires PENDING bookings whose payment window has
// lapsed. No money has moved for these, so no ledger entries are needed.
func (jr *JobRunner) ExpireUnpaidBookings() {
	jr.runWithRecovery("ExpireUnpaidBookings", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.PaymentWindowMinutes) * time.Minute)

		stale, err := jr.store.BookingRepository.ListPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list unpaid bookings", "error", err)
			return
		}

		count := 0
		for i := range stale {
			b := &stale[i]
			b.Status = domain.BookingStatusExpired
			if err := jr.store.BookingRepository.Update(ctx, b); err != nil {
				logger.Error("Failed to expire booking", "booking_id", b.ID, "error", err)
				continue
			}
			jr.broadcastStatus(ctx, b)
			jr.notify(ctx, b.CustomerID, "Booking Expired",
				fmt.Sprintf("Booking %d expired because payment was not confirmed in time", b.ID), b.ID)
			count++
		}
		logger.Info("Expired unpaid bookings", "count", count)
	})
}

// MarkNoShows closes CONFIRMED bookings that never started within the
// grace period after their scheduled start. The escrow is refunded in
// full: no session took place, so the customer is made whole.
func (jr *JobRunner) MarkNoShows() {
	jr.runWithRecovery("MarkNoShows", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.NoShowGraceMinutes) * time.Minute)

		stale, err := jr.store.BookingRepository.ListConfirmedStartedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list no-show candidates", "error", err)
			return
		}

		count := 0
		for i := range stale {
			b := &stale[i]

			if b.EscrowStatus == domain.EscrowStatusHeld {
				entry := &domain.LedgerEntry{
					UserID:      b.CustomerID,
					BookingID:   &b.ID,
					AmountCents: b.AmountCents,
					Type:        domain.LedgerEntryTypeRefund,
					Description: fmt.Sprintf("No-show refund for booking %d", b.ID),
				}
				if err := jr.store.LedgerRepository.CreateEntry(ctx, entry); err != nil {
					logger.Error("Failed to refund no-show", "booking_id", b.ID, "error", err)
					continue
				}
				b.EscrowStatus = domain.EscrowStatusRefunded
				b.RefundCents = b.AmountCents
			}

			b.Status = domain.BookingStatusNoShow
			if err := jr.store.BookingRepository.Update(ctx, b); err != nil {
				logger.Error("Failed to mark no-show", "booking_id", b.ID, "error", err)
				continue
			}
			jr.broadcastStatus(ctx, b)
			jr.notify(ctx, b.CustomerID, "Appointment Missed",
				fmt.Sprintf("Booking %d was marked as a no-show and refunded", b.ID), b.ID)
			jr.notify(ctx, b.StylistID, "Appointment Missed",
				fmt.Sprintf("Booking %d was marked as a no-show", b.ID), b.ID)
			count++
		}
		logger.Info("Marked no-show bookings", "count", count)
	})
}

// ReleaseEscrowDue pays stylists for completed sessions once the dispute
// window has passed.
func (jr *JobRunner) ReleaseEscrowDue() {
	jr.runWithRecovery("ReleaseEscrowDue", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.DisputeWindowHours) * time.Hour)

		due, err := jr.store.BookingRepository.ListCompletedHeldBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list escrow releases", "error", err)
			return
		}

		count := 0
		for i := range due {
			b := &due[i]
			entry := &domain.LedgerEntry{
				UserID:      b.StylistID,
				BookingID:   &b.ID,
				AmountCents: b.AmountCents,
				Type:        domain.LedgerEntryTypeEscrowRelease,
				Description: fmt.Sprintf("Session payout for booking %d", b.ID),
			}
			if err := jr.store.LedgerRepository.CreateEntry(ctx, entry); err != nil {
				logger.Error("Failed to release escrow", "booking_id", b.ID, "error", err)
				continue
			}

			b.EscrowStatus = domain.EscrowStatusReleased
			if err := jr.store.BookingRepository.Update(ctx, b); err != nil {
				logger.Error("Failed to update released booking", "booking_id", b.ID, "error", err)
				continue
			}
			jr.notify(ctx, b.StylistID, "Payout Released",
				fmt.Sprintf("Earnings for booking %d have been released", b.ID), b.ID)
			count++
		}
		logger.Info("Released held escrow", "count", count)
	})
}

// SendAppointmentReminders emails customers about bookings starting
// within the reminder lead window.
func (jr *JobRunner) SendAppointmentReminders() {
	jr.runWithRecovery("SendAppointmentReminders", func() {
		ctx := context.Background()
		now := time.Now()
		until := now.Add(time.Duration(jr.config.Booking.ReminderLeadHours) * time.Hour)

		upcoming, err := jr.store.BookingRepository.ListConfirmedStartingBetween(ctx, now, until)
		if err != nil {
			logger.Error("Failed to list upcoming bookings", "error", err)
			return
		}

		count := 0
		for i := range upcoming {
			b := &upcoming[i]
			customer, err := jr.store.UserRepository.GetByID(ctx, b.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder", "booking_id", b.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendAppointmentReminder(ctx, customer.Email, b.ServiceName, b.ScheduledStart); err != nil {
				logger.Error("Failed to send reminder", "booking_id", b.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent appointment reminders", "count", count)
	})
}

func (jr *JobRunner) broadcastStatus(ctx context.Context, b *domain.Booking) {
	_ = jr.publisher.Publish(ctx, live.Event{
		BookingID: b.ID,
		Type:      live.EventStatusChanged,
		Data:      map[string]string{"status": string(b.Status)},
		At:        time.Now(),
	})
}

func (jr *JobRunner) notify(ctx context.Context, userID int32, title, message string, bookingID int32) {
	err := jr.store.NotificationRepository.Create(ctx, &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       "BOOKING_SWEEP",
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	})
	if err != nil {
		logger.Error("Failed to create notification", "user_id", userID, "error", err)
	}
}
