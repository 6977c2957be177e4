package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/metrics"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/policy"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

// conditionalMinCompleted is the booking history a stylist needs for a
// CONDITIONAL chair to auto-approve.
const conditionalMinCompleted = 3

type rentalService struct {
	rentalRepo  repository.RentalRequestRepository
	propRepo    repository.PropertyRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	ledgerRepo  repository.LedgerRepository
	scRepo      repository.StylistContextRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewRentalService(
	rentalRepo repository.RentalRequestRepository,
	propRepo repository.PropertyRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	scRepo repository.StylistContextRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		propRepo:    propRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
		scRepo:      scRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func (s *rentalService) CreateRequest(ctx context.Context, stylistID, chairID int32, startDate, endDate, message string) (*domain.RentalRequest, error) {
	chair, err := s.propRepo.GetChairByID(ctx, chairID)
	if err != nil {
		return nil, err
	}
	if chair.Status != domain.ChairStatusAvailable {
		return nil, domain.ErrChairUnavailable
	}
	prop, err := s.propRepo.GetByID(ctx, chair.PropertyID)
	if err != nil {
		return nil, err
	}

	quote, err := policy.ChairRent(startDate, endDate, chair)
	if err != nil {
		return nil, err
	}

	rr := &domain.RentalRequest{
		ChairID:          chair.ID,
		PropertyID:       prop.ID,
		StylistID:        stylistID,
		OwnerID:          prop.OwnerID,
		StartDate:        startDate,
		EndDate:          endDate,
		DailyRentCents:   chair.DailyRentCents,
		WeeklyRentCents:  chair.WeeklyRentCents,
		MonthlyRentCents: chair.MonthlyRentCents,
		TotalCents:       quote.TotalCents,
		Status:           domain.RentalRequestStatusPending,
		Message:          message,
	}

	decision := "manual_review"
	switch chair.ApprovalMode {
	case domain.ApprovalModeInstant:
		rr.Status = domain.RentalRequestStatusApproved
		rr.DecisionNote = "Auto-approved (instant booking)"
		decision = "instant"
	case domain.ApprovalModeConditional:
		completed, err := s.bookingRepo.CountCompletedByStylist(ctx, stylistID)
		if err != nil {
			return nil, err
		}
		if completed >= conditionalMinCompleted {
			rr.Status = domain.RentalRequestStatusApproved
			rr.DecisionNote = "Auto-approved (established booking history)"
			decision = "conditional"
		}
	}

	if err := s.rentalRepo.Create(ctx, rr); err != nil {
		return nil, err
	}
	metrics.RentalRequests.WithLabelValues(decision).Inc()

	stylist, _ := s.userRepo.GetByID(ctx, stylistID)
	owner, _ := s.userRepo.GetByID(ctx, prop.OwnerID)
	if stylist != nil && owner != nil {
		if rr.Status == domain.RentalRequestStatusPending {
			_ = s.emailSvc.SendRentalRequestNotification(ctx, owner.Email, stylist.Name, chair.Name)
		} else {
			_ = s.emailSvc.SendRentalDecisionNotification(ctx, stylist.Email, chair.Name, string(rr.Status), rr.DecisionNote)
		}
		s.notify(ctx, prop.OwnerID, "New Rental Request",
			fmt.Sprintf("%s requested chair %s (%s to %s)", stylist.Name, chair.Name, startDate, endDate), rr.ID)
	}

	return rr, nil
}

func (s *rentalService) Approve(ctx context.Context, ownerID, requestID int32, note string) (*domain.RentalRequest, error) {
	return s.decide(ctx, ownerID, requestID, domain.RentalRequestStatusApproved, note)
}

func (s *rentalService) Reject(ctx context.Context, ownerID, requestID int32, note string) (*domain.RentalRequest, error) {
	return s.decide(ctx, ownerID, requestID, domain.RentalRequestStatusRejected, note)
}

func (s *rentalService) decide(ctx context.Context, ownerID, requestID int32, status domain.RentalRequestStatus, note string) (*domain.RentalRequest, error) {
	rr, err := s.rentalRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if rr.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if rr.Status != domain.RentalRequestStatusPending {
		return nil, domain.ErrRequestNotPending
	}

	rr.Status = status
	rr.DecisionNote = note
	if err := s.rentalRepo.Update(ctx, rr); err != nil {
		return nil, err
	}

	stylist, _ := s.userRepo.GetByID(ctx, rr.StylistID)
	chair, _ := s.propRepo.GetChairByID(ctx, rr.ChairID)
	if stylist != nil && chair != nil {
		_ = s.emailSvc.SendRentalDecisionNotification(ctx, stylist.Email, chair.Name, string(status), note)
	}
	s.notify(ctx, rr.StylistID, "Rental Request Decision",
		fmt.Sprintf("Your chair rental request %d was %s", rr.ID, strings.ToLower(string(status))), rr.ID)

	return rr, nil
}

func (s *rentalService) Cancel(ctx context.Context, stylistID, requestID int32) (*domain.RentalRequest, error) {
	rr, err := s.rentalRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if rr.StylistID != stylistID {
		return nil, domain.ErrForbidden
	}
	if rr.Status != domain.RentalRequestStatusPending && rr.Status != domain.RentalRequestStatusApproved {
		return nil, domain.ErrInvalidStatus
	}

	rr.Status = domain.RentalRequestStatusCancelled
	if err := s.rentalRepo.Update(ctx, rr); err != nil {
		return nil, err
	}

	s.notify(ctx, rr.OwnerID, "Rental Request Cancelled",
		fmt.Sprintf("Rental request %d was withdrawn by the stylist", rr.ID), rr.ID)
	return rr, nil
}

func (s *rentalService) ListForStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return s.rentalRepo.ListByStylist(ctx, stylistID, status, page, pageSize)
}

func (s *rentalService) ListForOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return s.rentalRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

// ActivateDue starts approved rentals whose start date has arrived:
// charges rent, occupies the chair, and points the stylist's context at
// it. Invoked by the scheduler.
func (s *rentalService) ActivateDue(ctx context.Context, today string) (int, error) {
	due, err := s.rentalRepo.ListApprovedStartingOn(ctx, today)
	if err != nil {
		return 0, err
	}

	activated := 0
	for i := range due {
		rr := &due[i]
		if err := s.activate(ctx, rr); err != nil {
			logger.Error("failed to activate rental", "rental_request_id", rr.ID, "error", err)
			continue
		}
		activated++
	}
	return activated, nil
}

func (s *rentalService) activate(ctx context.Context, rr *domain.RentalRequest) error {
	charge := &domain.LedgerEntry{
		UserID:          rr.StylistID,
		RentalRequestID: &rr.ID,
		AmountCents:     -rr.TotalCents,
		Type:            domain.LedgerEntryTypeRentCharge,
		Description:     fmt.Sprintf("Chair rent %s to %s", rr.StartDate, rr.EndDate),
	}
	if err := s.ledgerRepo.CreateEntry(ctx, charge); err != nil {
		return err
	}
	payout := &domain.LedgerEntry{
		UserID:          rr.OwnerID,
		RentalRequestID: &rr.ID,
		AmountCents:     rr.TotalCents,
		Type:            domain.LedgerEntryTypeRentPayout,
		Description:     fmt.Sprintf("Chair rent received for request %d", rr.ID),
	}
	if err := s.ledgerRepo.CreateEntry(ctx, payout); err != nil {
		return err
	}

	rr.Status = domain.RentalRequestStatusActive
	if err := s.rentalRepo.Update(ctx, rr); err != nil {
		return err
	}

	if chair, err := s.propRepo.GetChairByID(ctx, rr.ChairID); err == nil {
		chair.Status = domain.ChairStatusOccupied
		_ = s.propRepo.UpdateChair(ctx, chair)
	}

	_ = s.scRepo.Upsert(ctx, &domain.StylistContext{
		StylistID:         rr.StylistID,
		Mode:              domain.StylistModeChair,
		ActiveRentalID:    &rr.ID,
		ChairID:           &rr.ChairID,
		AcceptingBookings: true,
	})

	s.notify(ctx, rr.StylistID, "Chair Rental Started",
		fmt.Sprintf("Your chair rental %d is now active", rr.ID), rr.ID)
	return nil
}

// CompleteEnded closes active rentals whose end date has passed and
// frees their chairs. Invoked by the scheduler.
func (s *rentalService) CompleteEnded(ctx context.Context, today string) (int, error) {
	ended, err := s.rentalRepo.ListActiveEndedBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range ended {
		rr := &ended[i]
		rr.Status = domain.RentalRequestStatusCompleted
		if err := s.rentalRepo.Update(ctx, rr); err != nil {
			logger.Error("failed to complete rental", "rental_request_id", rr.ID, "error", err)
			continue
		}
		if chair, err := s.propRepo.GetChairByID(ctx, rr.ChairID); err == nil {
			chair.Status = domain.ChairStatusAvailable
			_ = s.propRepo.UpdateChair(ctx, chair)
		}
		// Back to mobile mode unless the stylist picks up another chair.
		_ = s.scRepo.Upsert(ctx, &domain.StylistContext{
			StylistID:         rr.StylistID,
			Mode:              domain.StylistModeMobile,
			AcceptingBookings: true,
		})
		completed++
	}
	return completed, nil
}

// ExpireStale expires PENDING requests whose start date passed without a
// decision. No money has moved for these. Invoked by the scheduler.
func (s *rentalService) ExpireStale(ctx context.Context, today string) (int, error) {
	stale, err := s.rentalRepo.ListPendingStartingBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		rr := &stale[i]
		rr.Status = domain.RentalRequestStatusExpired
		rr.DecisionNote = "Expired: no decision before the start date"
		if err := s.rentalRepo.Update(ctx, rr); err != nil {
			logger.Error("failed to expire rental request", "rental_request_id", rr.ID, "error", err)
			continue
		}
		s.notify(ctx, rr.StylistID, "Rental Request Expired",
			fmt.Sprintf("Your chair rental request %d expired without a decision", rr.ID), rr.ID)
		s.notify(ctx, rr.OwnerID, "Rental Request Expired",
			fmt.Sprintf("Rental request %d expired unreviewed", rr.ID), rr.ID)
		expired++
	}
	return expired, nil
}

func (s *rentalService) notify(ctx context.Context, userID int32, title, message string, requestID int32) {
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":              "RENTAL_REQUEST",
			"rental_request_id": strconv.Itoa(int(requestID)),
		},
	})
}
