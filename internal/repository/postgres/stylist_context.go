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

type stylistContextRepository struct {
	db *sql.DB
}

func NewStylistContextRepository(db *sql.DB) repository.StylistContextRepository {
	return &stylistContextRepository{db: db}
}

func (r *stylistContextRepository) Get(ctx context.Context, stylistID int32) (*domain.StylistContext, error) {
	sc := &domain.StylistContext{}
	query := `SELECT stylist_id, mode, active_rental_id, chair_id, service_area, accepting_bookings, updated_on
	          FROM stylist_contexts WHERE stylist_id = $1`
	err := r.db.QueryRowContext(ctx, query, stylistID).Scan(
		&sc.StylistID, &sc.Mode, &sc.ActiveRentalID, &sc.ChairID, &sc.ServiceArea, &sc.AcceptingBookings, &sc.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (r *stylistContextRepository) Upsert(ctx context.Context, sc *domain.StylistContext) error {
	query := `INSERT INTO stylist_contexts (stylist_id, mode, active_rental_id, chair_id, service_area, accepting_bookings, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (stylist_id) DO UPDATE SET
	            mode = EXCLUDED.mode,
	            active_rental_id = EXCLUDED.active_rental_id,
	            chair_id = EXCLUDED.chair_id,
	            service_area = EXCLUDED.service_area,
	            accepting_bookings = EXCLUDED.accepting_bookings,
	            updated_on = EXCLUDED.updated_on`
	_, err := r.db.ExecContext(ctx, query,
		sc.StylistID, sc.Mode, sc.ActiveRentalID, sc.ChairID, sc.ServiceArea, sc.AcceptingBookings, time.Now(),
	)
	return err
}

func (r *stylistContextRepository) ListAvailability(ctx context.Context, stylistID int32) ([]domain.AvailabilityBlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, stylist_id, weekday, start_time, end_time FROM availability_blocks WHERE stylist_id = $1 ORDER BY weekday, start_time`,
		stylistID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.AvailabilityBlock
	for rows.Next() {
		var b domain.AvailabilityBlock
		if err := rows.Scan(&b.ID, &b.StylistID, &b.Weekday, &b.StartTime, &b.EndTime); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *stylistContextRepository) ReplaceAvailability(ctx context.Context, stylistID int32, blocks []domain.AvailabilityBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM availability_blocks WHERE stylist_id = $1`, stylistID); err != nil {
		return err
	}
	for i := range blocks {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO availability_blocks (stylist_id, weekday, start_time, end_time) VALUES ($1, $2, $3, $4) RETURNING id`,
			stylistID, blocks[i].Weekday, blocks[i].StartTime, blocks[i].EndTime,
		).Scan(&blocks[i].ID)
		if err != nil {
			return fmt.Errorf("insert availability block: %w", err)
		}
		blocks[i].StylistID = stylistID
	}
	return tx.Commit()
}

func (r *stylistContextRepository) ListBlockedDates(ctx context.Context, stylistID int32) ([]domain.BlockedDate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, stylist_id, date, reason FROM blocked_dates WHERE stylist_id = $1 ORDER BY date`,
		stylistID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []domain.BlockedDate
	for rows.Next() {
		var d domain.BlockedDate
		if err := rows.Scan(&d.ID, &d.StylistID, &d.Date, &d.Reason); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *stylistContextRepository) CreateBlockedDate(ctx context.Context, b *domain.BlockedDate) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO blocked_dates (stylist_id, date, reason) VALUES ($1, $2, $3) RETURNING id`,
		b.StylistID, b.Date, b.Reason,
	).Scan(&b.ID)
}

func (r *stylistContextRepository) DeleteBlockedDate(ctx context.Context, id, stylistID int32) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM blocked_dates WHERE id = $1 AND stylist_id = $2`, id, stylistID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
