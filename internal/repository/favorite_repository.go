package repository

import (
	"context"

	"newsfox/internal/domain/entity"
)

// FavoriteRepository persists Favorite records owned by a user.
type FavoriteRepository interface {
	// FindByUserAndURL returns nil, nil when the user has not saved url.
	FindByUserAndURL(ctx context.Context, userID, url string) (*entity.Favorite, error)
	// Create inserts the favorite. It returns ErrDuplicate when (user_id, url) exists.
	Create(ctx context.Context, fav *entity.Favorite) error
	// ListByUser returns the user's favorites ordered by added_at DESC.
	// Returns an empty slice (not nil) when there are none.
	ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error)
}
