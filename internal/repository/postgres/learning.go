package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"

	"github.com/lib/pq"
)

type learningRepository struct {
	db *sql.DB
}

func NewLearningRepository(db *sql.DB) repository.LearningRepository {
	return &learningRepository{db: db}
}

func (r *learningRepository) List(ctx context.Context, topic string, page, pageSize int32) ([]domain.LearningResource, int32, error) {
	offset := (page - 1) * pageSize

	where := ""
	countArgs := []interface{}{}
	if topic != "" {
		where = " WHERE $1 = ANY(topics)"
		countArgs = append(countArgs, topic)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM learning_resources`+where, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, title, summary, topics, media_url, published_on FROM learning_resources` + where
	args := countArgs
	if topic != "" {
		query += ` ORDER BY published_on DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY published_on DESC LIMIT $1 OFFSET $2`
	}
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var resources []domain.LearningResource
	for rows.Next() {
		var lr domain.LearningResource
		if err := rows.Scan(&lr.ID, &lr.Title, &lr.Summary, pq.Array(&lr.Topics), &lr.MediaURL, &lr.PublishedOn); err != nil {
			return nil, 0, err
		}
		resources = append(resources, lr)
	}
	return resources, count, rows.Err()
}

func (r *learningRepository) GetByID(ctx context.Context, id int32) (*domain.LearningResource, error) {
	lr := &domain.LearningResource{}
	query := `SELECT id, title, summary, body, topics, media_url, published_on
	          FROM learning_resources WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lr.ID, &lr.Title, &lr.Summary, &lr.Body, pq.Array(&lr.Topics), &lr.MediaURL, &lr.PublishedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return lr, nil
}
