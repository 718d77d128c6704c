package favorite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newsfox/internal/domain/entity"
	"newsfox/internal/observability/metrics"
	"newsfox/internal/repository"
)

// EnsureUser returns the user record for email, creating it on first sight.
// Concurrent first requests for the same email converge on a single row: the
// loser of the insert race re-reads and returns the winner.
func (s *Service) EnsureUser(ctx context.Context, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &entity.User{
		ID:        s.newID(),
		Email:     email,
		CreatedAt: s.now(),
	}
	err = s.Users.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		winner, err := s.Users.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("re-read user: %w", err)
		}
		if winner == nil {
			return nil, fmt.Errorf("re-read user: %w", entity.ErrNotFound)
		}
		return winner, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordUserCreated()
	slog.Debug("user created", slog.String("user_id", user.ID))
	return user, nil
}
