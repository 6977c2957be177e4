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

const rentalColumns = `id, chair_id, property_id, stylist_id, owner_id, start_date, end_date,
	daily_rent_cents, weekly_rent_cents, monthly_rent_cents, total_cents,
	status, message, decision_note, created_on, updated_on`

type rentalRequestRepository struct {
	db *sql.DB
}

func NewRentalRequestRepository(db *sql.DB) repository.RentalRequestRepository {
	return &rentalRequestRepository{db: db}
}

func (r *rentalRequestRepository) Create(ctx context.Context, rr *domain.RentalRequest) error {
	query := `INSERT INTO rental_requests (chair_id, property_id, stylist_id, owner_id, start_date, end_date,
	            daily_rent_cents, weekly_rent_cents, monthly_rent_cents, total_cents, status, message, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		rr.ChairID, rr.PropertyID, rr.StylistID, rr.OwnerID, rr.StartDate, rr.EndDate,
		rr.DailyRentCents, rr.WeeklyRentCents, rr.MonthlyRentCents, rr.TotalCents, rr.Status, rr.Message, now, now,
	).Scan(&rr.ID)
}

func scanRentalRequest(row interface{ Scan(...interface{}) error }) (*domain.RentalRequest, error) {
	rr := &domain.RentalRequest{}
	err := row.Scan(
		&rr.ID, &rr.ChairID, &rr.PropertyID, &rr.StylistID, &rr.OwnerID, &rr.StartDate, &rr.EndDate,
		&rr.DailyRentCents, &rr.WeeklyRentCents, &rr.MonthlyRentCents, &rr.TotalCents,
		&rr.Status, &rr.Message, &rr.DecisionNote, &rr.CreatedOn, &rr.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_requests WHERE id = $1`
	return scanRentalRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *rentalRequestRepository) Update(ctx context.Context, rr *domain.RentalRequest) error {
	query := `UPDATE rental_requests SET status=$1, decision_note=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, rr.Status, rr.DecisionNote, time.Now(), rr.ID)
	return err
}

func (r *rentalRequestRepository) listByParty(ctx context.Context, column string, partyID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rental_requests WHERE ` + column + ` = $1`

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

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.RentalRequest
	for rows.Next() {
		rr, err := scanRentalRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, *rr)
	}
	return reqs, count, rows.Err()
}

func (r *rentalRequestRepository) ListByStylist(ctx context.Context, stylistID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return r.listByParty(ctx, "stylist_id", stylistID, status, page, pageSize)
}

func (r *rentalRequestRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return r.listByParty(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *rentalRequestRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]domain.RentalRequest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+rentalColumns+` FROM rental_requests WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RentalRequest
	for rows.Next() {
		rr, err := scanRentalRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *rr)
	}
	return reqs, rows.Err()
}

func (r *rentalRequestRepository) ListApprovedStartingOn(ctx context.Context, date string) ([]domain.RentalRequest, error) {
	return r.listWhere(ctx, `status = 'APPROVED' AND start_date <= $1`, date)
}

func (r *rentalRequestRepository) ListActiveEndedBefore(ctx context.Context, date string) ([]domain.RentalRequest, error) {
	return r.listWhere(ctx, `status = 'ACTIVE' AND end_date < $1`, date)
}

func (r *rentalRequestRepository) ListPendingStartingBefore(ctx context.Context, date string) ([]domain.RentalRequest, error) {
	return r.listWhere(ctx, `status = 'PENDING' AND start_date < $1`, date)
}
