package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsfox/internal/domain/entity"
	"newsfox/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT id, email, created_at
FROM users
WHERE email = $1
LIMIT 1`
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (id, email, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, user.ID, user.Email, user.CreatedAt)
	return insertResult("Create", res, err)
}
