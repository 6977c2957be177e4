package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

const bookingColumns = `id, customer_id, stylist_id, chair_id, service_name, location_mode, address,
	scheduled_start, duration_minutes, amount_cents, tip_cents, refund_cents, status, escrow_status,
	cancelled_by, cancel_reason, notes, started_on, completed_on, created_on, updated_on`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (customer_id, stylist_id, chair_id, service_name, location_mode, address,
	            scheduled_start, duration_minutes, amount_cents, tip_cents, refund_cents, status, escrow_status,
	            notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.CustomerID, b.StylistID, b.ChairID, b.ServiceName, b.LocationMode, b.Address,
		b.ScheduledStart, b.DurationMinutes, b.AmountCents, b.TipCents, b.RefundCents, b.Status, b.EscrowStatus,
		b.Notes, now, now,
	).Scan(&b.ID)
}

func scanBooking(row interface{ Scan(...interface{}) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.StylistID, &b.ChairID, &b.ServiceName, &b.LocationMode, &b.Address,
		&b.ScheduledStart, &b.DurationMinutes, &b.AmountCents, &b.TipCents, &b.RefundCents, &b.Status, &b.EscrowStatus,
		&b.CancelledBy, &b.CancelReason, &b.Notes, &b.StartedOn, &b.CompletedOn, &b.CreatedOn, &b.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET scheduled_start=$1, duration_minutes=$2, tip_cents=$3, refund_cents=$4,
	            status=$5, escrow_status=$6, cancelled_by=$7, cancel_reason=$8, notes=$9,
	            started_on=$10, completed_on=$11, updated_on=$12
	          WHERE id=$13`
	_, err := r.db.ExecContext(ctx, query,
		b.ScheduledStart, b.DurationMinutes, b.TipCents, b.RefundCents,
		b.Status, b.EscrowStatus, b.CancelledBy, b.CancelReason, b.Notes,
		b.StartedOn, b.CompletedOn, time.Now(), b.ID,
	)
	return err
}

func (r *bookingRepository) listByParty(ctx context.Context, column string, partyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1`

	args := []interface{}{partyID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY scheduled_start DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *bookingRepository) ListByStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "stylist_id", stylistID, status, page, pageSize)
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, stylistID int32, start, end time.Time, excludeID int32) (int32, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE stylist_id = $1
	            AND id <> $2
	            AND status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')
	            AND scheduled_start < $3
	            AND scheduled_start + (duration_minutes || ' minutes')::interval > $4`
	var count int32
	err := r.db.QueryRowContext(ctx, query, stylistID, excludeID, end, start).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountCompletedByStylist(ctx context.Context, stylistID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE stylist_id = $1 AND status = 'COMPLETED'`, stylistID,
	).Scan(&count)
	return count, err
}

func (r *bookingRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	return r.listWhere(ctx, `status = 'PENDING' AND created_on < $1`, cutoff)
}

func (r *bookingRepository) ListConfirmedStartedBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	return r.listWhere(ctx, `status = 'CONFIRMED' AND scheduled_start < $1`, cutoff)
}

func (r *bookingRepository) ListCompletedHeldBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	return r.listWhere(ctx, `status = 'COMPLETED' AND escrow_status = 'HELD' AND completed_on < $1`, cutoff)
}

func (r *bookingRepository) ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	return r.listWhere(ctx, `status = 'CONFIRMED' AND scheduled_start >= $1 AND scheduled_start < $2`, from, to)
}
