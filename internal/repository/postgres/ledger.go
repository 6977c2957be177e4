package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (user_id, booking_id, rental_request_id, amount_cents, type, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		e.UserID, e.BookingID, e.RentalRequestID, e.AmountCents, e.Type, e.Description, time.Now(),
	).Scan(&e.ID)
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM ledger_entries WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, booking_id, rental_request_id, amount_cents, type, description, created_on
	          FROM ledger_entries WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.BookingID, &e.RentalRequestID, &e.AmountCents, &e.Type, &e.Description, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}

func (r *ledgerRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error) {
	query := `SELECT id, user_id, booking_id, rental_request_id, amount_cents, type, description, created_on
	          FROM ledger_entries WHERE booking_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.BookingID, &e.RentalRequestID, &e.AmountCents, &e.Type, &e.Description, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepository) GetSummary(ctx context.Context, userID int32) (*domain.LedgerSummary, error) {
	s := &domain.LedgerSummary{}
	query := `SELECT
	            COALESCE(SUM(amount_cents), 0),
	            COALESCE(SUM(CASE WHEN type = 'ESCROW_HOLD' THEN -amount_cents ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN type IN ('ESCROW_RELEASE', 'TIP', 'RENT_PAYOUT') AND amount_cents > 0 THEN amount_cents ELSE 0 END), 0)
	          FROM ledger_entries WHERE user_id = $1`
	var balance sql.NullInt32
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance, &s.HeldCents, &s.EarnedCents)
	if err != nil {
		return nil, err
	}
	s.BalanceCents = balance.Int32
	return s, nil
}
