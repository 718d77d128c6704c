package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsfox/internal/domain/entity"
	"newsfox/internal/infra/adapter/persistence/sqlite"
	"newsfox/internal/infra/db"
	"newsfox/internal/repository"
)

// ─────────────────────────────────────────────
// ヘルパ：インメモリDB
// ─────────────────────────────────────────────
func openDB(t *testing.T) *sql.DB {
	t.Helper()
	name := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	conn, err := sql.Open(db.DriverSQLite, name)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(context.Background(), conn, db.SQLite))
	return conn
}

func seedUser(t *testing.T, conn *sql.DB, id, email string) *entity.User {
	t.Helper()
	u := &entity.User{ID: id, Email: email, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, sqlite.NewUserRepo(conn).Create(context.Background(), u))
	return u
}

// ─────────────────────────────────────────────
// 1. Users
// ─────────────────────────────────────────────
func TestUserRepo_CreateAndFind(t *testing.T) {
	conn := openDB(t)
	repo := sqlite.NewUserRepo(conn)
	ctx := context.Background()

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	want := seedUser(t, conn, "u-1", "alice@example.com")

	got, err = repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	conn := openDB(t)
	seedUser(t, conn, "u-1", "alice@example.com")

	err := sqlite.NewUserRepo(conn).Create(context.Background(), &entity.User{
		ID: "u-2", Email: "alice@example.com", CreatedAt: time.Now(),
	})
	assert.True(t, errors.Is(err, repository.ErrDuplicate), "err=%v", err)
}

// ─────────────────────────────────────────────
// 2. Favorites
// ─────────────────────────────────────────────
func TestFavoriteRepo_CreateFindList(t *testing.T) {
	conn := openDB(t)
	u := seedUser(t, conn, "u-1", "alice@example.com")
	repo := sqlite.NewFavoriteRepo(conn)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	img := "https://example.com/a.png"
	first := &entity.Favorite{ID: "f-1", UserID: u.ID, Title: "A", URL: "https://example.com/a", ImageURL: &img, Source: "AP", AddedAt: base}
	second := &entity.Favorite{ID: "f-2", UserID: u.ID, Title: "B", URL: "https://example.com/b", Source: "Unknown", AddedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	found, err := repo.FindByUserAndURL(ctx, u.ID, "https://example.com/a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "A", found.Title)
	require.NotNil(t, found.ImageURL)
	assert.Equal(t, img, *found.ImageURL)

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, f := range list {
		ids = append(ids, f.ID)
	}
	if diff := cmp.Diff([]string{"f-2", "f-1"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, list[0].ImageURL)
}

func TestFavoriteRepo_Create_DuplicatePerUser(t *testing.T) {
	conn := openDB(t)
	alice := seedUser(t, conn, "u-1", "alice@example.com")
	bob := seedUser(t, conn, "u-2", "bob@example.com")
	repo := sqlite.NewFavoriteRepo(conn)
	ctx := context.Background()

	fav := func(id, userID string) *entity.Favorite {
		return &entity.Favorite{ID: id, UserID: userID, Title: "T", URL: "https://example.com/x", Source: "Unknown", AddedAt: time.Now()}
	}
	require.NoError(t, repo.Create(ctx, fav("f-1", alice.ID)))
	assert.ErrorIs(t, repo.Create(ctx, fav("f-2", alice.ID)), repository.ErrDuplicate)
	// 別ユーザーなら同じURLでも保存できる
	require.NoError(t, repo.Create(ctx, fav("f-3", bob.ID)))
}

func TestFavoriteRepo_CascadeOnUserDelete(t *testing.T) {
	conn := openDB(t)
	u := seedUser(t, conn, "u-1", "alice@example.com")
	repo := sqlite.NewFavoriteRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Favorite{ID: "f-1", UserID: u.ID, Title: "T", URL: "https://x", Source: "Unknown", AddedAt: time.Now()}))
	_, err := conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, u.ID)
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
