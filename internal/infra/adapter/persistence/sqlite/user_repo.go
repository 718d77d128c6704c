package sqlite

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
WHERE email = ?
LIMIT 1`
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: QueryRowContext: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (id, email, created_at)
VALUES (?, ?, ?)
ON CONFLICT (email) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, user.ID, user.Email, user.CreatedAt.UTC())
	return insertResult("Create", res, err)
}

// insertResult maps zero affected rows from an ON CONFLICT DO NOTHING insert to ErrDuplicate.
func insertResult(op string, res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("%s: ExecContext: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: RowsAffected: %w", op, err)
	}
	if n == 0 {
		return repository.ErrDuplicate
	}
	return nil
}
