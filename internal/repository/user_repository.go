package repository

import (
	"context"

	"newsfox/internal/domain/entity"
)

// UserRepository persists User records keyed by email.
type UserRepository interface {
	// FindByEmail returns nil, nil when no user has the given email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create inserts the user. It returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *entity.User) error
}
