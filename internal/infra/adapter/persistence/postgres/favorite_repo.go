package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsfox/internal/domain/entity"
	"newsfox/internal/repository"
)

type FavoriteRepo struct{ db *sql.DB }

func NewFavoriteRepo(db *sql.DB) repository.FavoriteRepository {
	return &FavoriteRepo{db: db}
}

func (repo *FavoriteRepo) FindByUserAndURL(ctx context.Context, userID, url string) (*entity.Favorite, error) {
	const query = `
SELECT id, user_id, title, url, image_url, source, added_at
FROM favorites
WHERE user_id = $1 AND url = $2
LIMIT 1`
	var fav entity.Favorite
	var imageURL sql.NullString
	err := repo.db.QueryRowContext(ctx, query, userID, url).Scan(
		&fav.ID, &fav.UserID, &fav.Title, &fav.URL, &imageURL, &fav.Source, &fav.AddedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUserAndURL: %w", err)
	}
	if imageURL.Valid {
		fav.ImageURL = &imageURL.String
	}
	return &fav, nil
}

func (repo *FavoriteRepo) Create(ctx context.Context, fav *entity.Favorite) error {
	const query = `
INSERT INTO favorites (id, user_id, title, url, image_url, source, added_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id, url) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query,
		fav.ID, fav.UserID, fav.Title, fav.URL, fav.ImageURL, fav.Source, fav.AddedAt,
	)
	return insertResult("Create", res, err)
}

func (repo *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	const query = `
SELECT id, user_id, title, url, image_url, source, added_at
FROM favorites
WHERE user_id = $1
ORDER BY added_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer func() { _ = rows.Close() }()

	favorites := make([]*entity.Favorite, 0, 16)
	for rows.Next() {
		var fav entity.Favorite
		var imageURL sql.NullString
		if err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.Title, &fav.URL, &imageURL, &fav.Source, &fav.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("ListByUser: %w", err)
		}
		if imageURL.Valid {
			fav.ImageURL = &imageURL.String
		}
		favorites = append(favorites, &fav)
	}
	return favorites, rows.Err()
}
