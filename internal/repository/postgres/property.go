package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"

	"github.com/lib/pq"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (owner_id, name, address, metro, amenities, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Name, p.Address, p.Metro, pq.Array(p.Amenities), p.Active, now, now,
	).Scan(&p.ID)
}

func (r *propertyRepository) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	p := &domain.Property{}
	query := `SELECT id, owner_id, name, address, metro, amenities, active, created_on, updated_on
	          FROM properties WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Metro, pq.Array(&p.Amenities), &p.Active, &p.CreatedOn, &p.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties SET name=$1, address=$2, metro=$3, amenities=$4, active=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.Address, p.Metro, pq.Array(p.Amenities), p.Active, time.Now(), p.ID,
	)
	return err
}

func (r *propertyRepository) Delete(ctx context.Context, id int32) error {
	// Soft delete; chairs stay for historical rental requests.
	_, err := r.db.ExecContext(ctx, `UPDATE properties SET deleted_on=$1 WHERE id=$2`, time.Now(), id)
	return err
}

func (r *propertyRepository) list(ctx context.Context, where string, filterArg interface{}, page, pageSize int32) ([]domain.Property, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM properties WHERE deleted_on IS NULL AND ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, filterArg).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, owner_id, name, address, metro, amenities, active, created_on, updated_on
	          FROM properties WHERE deleted_on IS NULL AND ` + where + `
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, filterArg, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var props []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Metro, pq.Array(&p.Amenities), &p.Active, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		props = append(props, p)
	}
	return props, count, rows.Err()
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Property, int32, error) {
	return r.list(ctx, "owner_id = $1", ownerID, page, pageSize)
}

func (r *propertyRepository) Search(ctx context.Context, metro string, page, pageSize int32) ([]domain.Property, int32, error) {
	return r.list(ctx, "active = TRUE AND metro ILIKE $1", metro, page, pageSize)
}

func (r *propertyRepository) CreateChair(ctx context.Context, c *domain.Chair) error {
	query := `INSERT INTO chairs (property_id, name, daily_rent_cents, weekly_rent_cents, monthly_rent_cents, approval_mode, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		c.PropertyID, c.Name, c.DailyRentCents, c.WeeklyRentCents, c.MonthlyRentCents, c.ApprovalMode, c.Status, now, now,
	).Scan(&c.ID)
}

func (r *propertyRepository) GetChairByID(ctx context.Context, id int32) (*domain.Chair, error) {
	c := &domain.Chair{}
	query := `SELECT id, property_id, name, daily_rent_cents, weekly_rent_cents, monthly_rent_cents, approval_mode, status, created_on, updated_on
	          FROM chairs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.PropertyID, &c.Name, &c.DailyRentCents, &c.WeeklyRentCents, &c.MonthlyRentCents, &c.ApprovalMode, &c.Status, &c.CreatedOn, &c.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *propertyRepository) UpdateChair(ctx context.Context, c *domain.Chair) error {
	query := `UPDATE chairs SET name=$1, daily_rent_cents=$2, weekly_rent_cents=$3, monthly_rent_cents=$4, approval_mode=$5, status=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		c.Name, c.DailyRentCents, c.WeeklyRentCents, c.MonthlyRentCents, c.ApprovalMode, c.Status, time.Now(), c.ID,
	)
	return err
}

func (r *propertyRepository) ListChairs(ctx context.Context, propertyID int32) ([]domain.Chair, error) {
	query := `SELECT id, property_id, name, daily_rent_cents, weekly_rent_cents, monthly_rent_cents, approval_mode, status, created_on, updated_on
	          FROM chairs WHERE property_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chairs []domain.Chair
	for rows.Next() {
		var c domain.Chair
		if err := rows.Scan(&c.ID, &c.PropertyID, &c.Name, &c.DailyRentCents, &c.WeeklyRentCents, &c.MonthlyRentCents, &c.ApprovalMode, &c.Status, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		chairs = append(chairs, c)
	}
	return chairs, rows.Err()
}
