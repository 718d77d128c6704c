package favorite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsfox/internal/domain/entity"
	"newsfox/internal/observability/metrics"
	"newsfox/internal/repository"
)

// AddInput represents the input parameters for saving an article.
// ImageURL and Source are optional.
type AddInput struct {
	Title    string
	URL      string
	ImageURL *string
	Source   *string
}

// Service provides favorite management use cases.
type Service struct {
	Users     repository.UserRepository
	Favorites repository.FavoriteRepository

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// NewService creates a Service with UTC clock and random UUIDs.
func NewService(users repository.UserRepository, favorites repository.FavoriteRepository) *Service {
	return &Service{Users: users, Favorites: favorites}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Add saves in for identity. If the identity already saved the same URL, the
// existing favorite is returned unchanged with created=false.
func (s *Service) Add(ctx context.Context, identity string, in AddInput) (fav *entity.Favorite, created bool, err error) {
	if strings.TrimSpace(identity) == "" {
		return nil, false, ErrUnauthorized
	}

	title := strings.TrimSpace(in.Title)
	url := strings.TrimSpace(in.URL)
	if err := validate(title, url); err != nil {
		metrics.RecordFavoriteAdd("invalid")
		return nil, false, err
	}

	user, err := s.EnsureUser(ctx, identity)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.Favorites.FindByUserAndURL(ctx, user.ID, url)
	if err != nil {
		return nil, false, fmt.Errorf("find favorite: %w", err)
	}
	if existing != nil {
		metrics.RecordFavoriteAdd("existing")
		return existing, false, nil
	}

	fav = &entity.Favorite{
		ID:       s.newID(),
		UserID:   user.ID,
		Title:    title,
		URL:      url,
		ImageURL: optional(in.ImageURL),
		Source:   entity.DefaultFavoriteSource,
		AddedAt:  s.now(),
	}
	if src := optional(in.Source); src != nil {
		fav.Source = *src
	}

	err = s.Favorites.Create(ctx, fav)
	if errors.Is(err, repository.ErrDuplicate) {
		// 同時リクエストに負けた側は既存の行を返す
		winner, err := s.Favorites.FindByUserAndURL(ctx, user.ID, url)
		if err != nil {
			return nil, false, fmt.Errorf("re-read favorite: %w", err)
		}
		if winner == nil {
			return nil, false, fmt.Errorf("re-read favorite: %w", entity.ErrNotFound)
		}
		metrics.RecordFavoriteAdd("existing")
		return winner, false, nil
	}
	if err != nil {
		metrics.RecordFavoriteAdd("error")
		return nil, false, fmt.Errorf("create favorite: %w", err)
	}

	metrics.RecordFavoriteAdd("created")
	return fav, true, nil
}

// List returns identity's favorites ordered by AddedAt, newest first.
// An identity without a user record yields ErrUserNotFound.
func (s *Service) List(ctx context.Context, identity string) ([]*entity.Favorite, error) {
	email := strings.TrimSpace(identity)
	if email == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	favs, err := s.Favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// validate only requires both fields to be present. Links are stored as the
// client sent them and never fetched.
func validate(title, url string) error {
	if url == "" {
		return errors.Join(ErrInvalidInput, &entity.ValidationError{Field: "url", Message: "url is required"})
	}
	if title == "" {
		return errors.Join(ErrInvalidInput, &entity.ValidationError{Field: "title", Message: "title is required"})
	}
	return nil
}

// optional trims p and maps blank values to nil.
func optional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
