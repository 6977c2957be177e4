package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/policy"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type stylistContextService struct {
	scRepo repository.StylistContextRepository
}

func NewStylistContextService(scRepo repository.StylistContextRepository) StylistContextService {
	return &stylistContextService{scRepo: scRepo}
}

func (s *stylistContextService) Get(ctx context.Context, stylistID int32) (*domain.StylistContext, error) {
	sc, err := s.scRepo.Get(ctx, stylistID)
	if errors.Is(err, domain.ErrNotFound) {
		// A stylist who never configured anything operates mobile.
		return &domain.StylistContext{
			StylistID:         stylistID,
			Mode:              domain.StylistModeMobile,
			AcceptingBookings: true,
		}, nil
	}
	return sc, err
}

func (s *stylistContextService) Update(ctx context.Context, stylistID int32, sc *domain.StylistContext) error {
	if sc.Mode != domain.StylistModeMobile && sc.Mode != domain.StylistModeChair {
		return domain.ErrInvalidStatus
	}
	sc.StylistID = stylistID
	return s.scRepo.Upsert(ctx, sc)
}

func (s *stylistContextService) SetAccepting(ctx context.Context, stylistID int32, accepting bool) error {
	sc, err := s.Get(ctx, stylistID)
	if err != nil {
		return err
	}
	sc.AcceptingBookings = accepting
	return s.scRepo.Upsert(ctx, sc)
}

type calendarService struct {
	scRepo repository.StylistContextRepository
}

func NewCalendarService(scRepo repository.StylistContextRepository) CalendarService {
	return &calendarService{scRepo: scRepo}
}

func (s *calendarService) GetAvailability(ctx context.Context, stylistID int32) ([]domain.AvailabilityBlock, error) {
	return s.scRepo.ListAvailability(ctx, stylistID)
}

func (s *calendarService) SetAvailability(ctx context.Context, stylistID int32, blocks []domain.AvailabilityBlock) error {
	for i := range blocks {
		b := &blocks[i]
		if b.Weekday < 0 || b.Weekday > 6 {
			return fmt.Errorf("weekday must be between 0 and 6")
		}
		if err := validateClock(b.StartTime); err != nil {
			return err
		}
		if err := validateClock(b.EndTime); err != nil {
			return err
		}
		if b.EndTime <= b.StartTime {
			return fmt.Errorf("end time must be after start time")
		}
		b.StylistID = stylistID
	}
	return s.scRepo.ReplaceAvailability(ctx, stylistID, blocks)
}

func (s *calendarService) ListBlockedDates(ctx context.Context, stylistID int32) ([]domain.BlockedDate, error) {
	return s.scRepo.ListBlockedDates(ctx, stylistID)
}

func (s *calendarService) AddBlockedDate(ctx context.Context, stylistID int32, date, reason string) (*domain.BlockedDate, error) {
	if _, err := policy.ParseDate(date); err != nil {
		return nil, err
	}
	b := &domain.BlockedDate{StylistID: stylistID, Date: date, Reason: reason}
	if err := s.scRepo.CreateBlockedDate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *calendarService) RemoveBlockedDate(ctx context.Context, stylistID, id int32) error {
	return s.scRepo.DeleteBlockedDate(ctx, id, stylistID)
}

// validateClock checks an HH:MM 24h time string.
func validateClock(v string) error {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return fmt.Errorf("time %q must be HH:MM", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return fmt.Errorf("time %q has an invalid hour", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return fmt.Errorf("time %q has invalid minutes", v)
	}
	return nil
}
