package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	query := `INSERT INTO favorites (user_id, kind, target_id, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, f.UserID, f.Kind, f.TargetID, time.Now()).Scan(&f.ID)
}

func (r *favoriteRepository) Delete(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND kind = $2 AND target_id = $3`,
		userID, kind, targetID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND kind = $2 AND target_id = $3)`,
		userID, kind, targetID,
	).Scan(&exists)
	return exists, err
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, target_id, created_on FROM favorites WHERE user_id = $1 ORDER BY created_on DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.Kind, &f.TargetID, &f.CreatedOn); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}
