package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (role, name, email, password_hash, phone_number, avatar_url, metro, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		u.Role, u.Name, u.Email, u.PasswordHash, u.PhoneNumber, u.AvatarURL, u.Metro, now, now,
	).Scan(&u.ID)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, role, name, email, password_hash, phone_number, avatar_url, metro, created_on, updated_on
	          FROM users WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Role, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &u.AvatarURL, &u.Metro, &u.CreatedOn, &u.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, role, name, email, password_hash, phone_number, avatar_url, metro, created_on, updated_on
	          FROM users WHERE email = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Role, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &u.AvatarURL, &u.Metro, &u.CreatedOn, &u.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, phone_number=$3, avatar_url=$4, metro=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.PhoneNumber, u.AvatarURL, u.Metro, time.Now(), u.ID)
	return err
}
