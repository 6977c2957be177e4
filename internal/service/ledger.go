package service

import (
	"context"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type ledgerService struct {
	ledgerRepo  repository.LedgerRepository
	bookingRepo repository.BookingRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, bookingRepo repository.BookingRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, bookingRepo: bookingRepo}
}

func (s *ledgerService) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	return s.ledgerRepo.ListByUser(ctx, userID, page, pageSize)
}

func (s *ledgerService) Summary(ctx context.Context, userID int32) (*domain.LedgerSummary, error) {
	return s.ledgerRepo.GetSummary(ctx, userID)
}

// ListForBooking returns a booking's money movements. Only the two
// parties to the booking may see them.
func (s *ledgerService) ListForBooking(ctx context.Context, userID, bookingID int32) ([]domain.LedgerEntry, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != userID && b.StylistID != userID {
		return nil, domain.ErrForbidden
	}
	return s.ledgerRepo.ListByBooking(ctx, bookingID)
}
