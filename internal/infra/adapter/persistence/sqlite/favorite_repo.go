package sqlite

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

const favoriteColumns = `id, user_id, title, url, image_url, source, added_at`

func scanFavorite(scan func(dest ...any) error) (*entity.Favorite, error) {
	var fav entity.Favorite
	var imageURL sql.NullString
	if err := scan(&fav.ID, &fav.UserID, &fav.Title, &fav.URL, &imageURL, &fav.Source, &fav.AddedAt); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		fav.ImageURL = &imageURL.String
	}
	return &fav, nil
}

func (repo *FavoriteRepo) FindByUserAndURL(ctx context.Context, userID, url string) (*entity.Favorite, error) {
	const query = `
SELECT ` + favoriteColumns + `
FROM favorites
WHERE user_id = ? AND url = ?
LIMIT 1`
	fav, err := scanFavorite(repo.db.QueryRowContext(ctx, query, userID, url).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUserAndURL: QueryRowContext: %w", err)
	}
	return fav, nil
}

func (repo *FavoriteRepo) Create(ctx context.Context, fav *entity.Favorite) error {
	const query = `
INSERT INTO favorites (` + favoriteColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, url) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query,
		fav.ID, fav.UserID, fav.Title, fav.URL, fav.ImageURL, fav.Source, fav.AddedAt.UTC(),
	)
	return insertResult("Create", res, err)
}

func (repo *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	const query = `
SELECT ` + favoriteColumns + `
FROM favorites
WHERE user_id = ?
ORDER BY added_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	favorites := make([]*entity.Favorite, 0, 16)
	for rows.Next() {
		fav, err := scanFavorite(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: Scan: %w", err)
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}
