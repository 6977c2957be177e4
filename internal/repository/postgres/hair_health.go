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

type hairHealthRepository struct {
	db *sql.DB
}

func NewHairHealthRepository(db *sql.DB) repository.HairHealthRepository {
	return &hairHealthRepository{db: db}
}

func (r *hairHealthRepository) GetByUser(ctx context.Context, userID int32) (*domain.HairHealthProfile, error) {
	p := &domain.HairHealthProfile{}
	query := `SELECT id, user_id, hair_type, porosity, scalp_type, conditions, goals, notes, created_on, updated_on
	          FROM hair_health_profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.HairType, &p.Porosity, &p.ScalpType,
		pq.Array(&p.Conditions), pq.Array(&p.Goals), &p.Notes, &p.CreatedOn, &p.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *hairHealthRepository) Upsert(ctx context.Context, p *domain.HairHealthProfile) error {
	query := `INSERT INTO hair_health_profiles (user_id, hair_type, porosity, scalp_type, conditions, goals, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	          ON CONFLICT (user_id) DO UPDATE SET
	            hair_type = EXCLUDED.hair_type,
	            porosity = EXCLUDED.porosity,
	            scalp_type = EXCLUDED.scalp_type,
	            conditions = EXCLUDED.conditions,
	            goals = EXCLUDED.goals,
	            notes = EXCLUDED.notes,
	            updated_on = EXCLUDED.updated_on
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.UserID, p.HairType, p.Porosity, p.ScalpType, pq.Array(p.Conditions), pq.Array(p.Goals), p.Notes, time.Now(),
	).Scan(&p.ID)
}
