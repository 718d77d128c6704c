package favorite_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsfox/internal/domain/entity"
	"newsfox/internal/handler/http/auth"
	"newsfox/internal/handler/http/favorite"
	"newsfox/internal/infra/adapter/persistence/sqlite"
	"newsfox/internal/infra/db"
	favUC "newsfox/internal/usecase/favorite"
)

/*──────────────────────── ヘルパ ────────────────────────*/

func newService(t *testing.T) *favUC.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := sql.Open(db.DriverSQLite, dsn)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(context.Background(), conn, db.SQLite))

	svc := favUC.NewService(sqlite.NewUserRepo(conn), sqlite.NewFavoriteRepo(conn))
	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	svc.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func newMux(svc favorite.Service) http.Handler {
	mux := http.NewServeMux()
	favorite.Register(mux, svc)
	return mux
}

func do(t *testing.T, h http.Handler, method, body, user string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/favorites", nil)
	} else {
		req = httptest.NewRequest(method, "/favorites", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req = req.WithContext(auth.WithUser(req.Context(), user))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), rr.Body.String())
	return v
}

/*──────────────────────── POST /favorites ────────────────────────*/

func TestCreateHandler_CreatesThenReturnsExisting(t *testing.T) {
	h := newMux(newService(t))
	body := `{"title":"  Rates hold  ","url":" https://news.example.com/rates ","imageUrl":"","source":"Wire"}`

	rr := do(t, h, http.MethodPost, body, "alice@example.com")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[favorite.CreatedResponse](t, rr)
	assert.NotEmpty(t, created.Favorite.ID)
	assert.Equal(t, "Rates hold", created.Favorite.Title)
	assert.Equal(t, "https://news.example.com/rates", created.Favorite.URL)
	assert.Nil(t, created.Favorite.ImageURL)
	assert.Equal(t, "Wire", created.Favorite.Source)

	rr = do(t, h, http.MethodPost, body, "alice@example.com")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	existing := decode[favorite.ExistingResponse](t, rr)
	assert.Equal(t, favorite.AlreadyExistsMessage, existing.Message)
	assert.Equal(t, created.Favorite.ID, existing.Favorite.ID)
	assert.True(t, created.Favorite.AddedAt.Equal(existing.Favorite.AddedAt))
}

func TestCreateHandler_DefaultSource(t *testing.T) {
	h := newMux(newService(t))

	rr := do(t, h, http.MethodPost, `{"title":"T","url":"https://x.example.com"}`, "bob@example.com")

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, entity.DefaultFavoriteSource, decode[favorite.CreatedResponse](t, rr).Favorite.Source)
}

func TestCreateHandler_BadRequests(t *testing.T) {
	h := newMux(newService(t))
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed json", `{"title":`, "invalid request body"},
		{"blank title", `{"title":"  ","url":"https://x.example.com"}`, "title is required"},
		{"missing url", `{"title":"X"}`, "url is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.body, "carol@example.com")

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantMsg, decode[map[string]string](t, rr)["error"])
		})
	}
}

func TestCreateHandler_StoresLinkAsSent(t *testing.T) {
	h := newMux(newService(t))

	rr := do(t, h, http.MethodPost, `{"title":"X","url":"example.com/a"}`, "dave@example.com")

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "example.com/a", decode[favorite.CreatedResponse](t, rr).Favorite.URL)
}

func TestCreateHandler_Unauthorized(t *testing.T) {
	svc := newService(t)
	h := newMux(svc)

	rr := do(t, h, http.MethodPost, `{"title":"X","url":"http://x"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	// 行は作られない
	_, err := svc.List(context.Background(), "anyone@example.com")
	assert.ErrorIs(t, err, favUC.ErrUserNotFound)
}

/*──────────────────────── GET /favorites ────────────────────────*/

func TestListHandler(t *testing.T) {
	h := newMux(newService(t))

	t.Run("user without records", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "", "dave@example.com")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "user not found", decode[map[string]string](t, rr)["error"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("newest first and scoped to user", func(t *testing.T) {
		for _, u := range []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"} {
			rr := do(t, h, http.MethodPost, fmt.Sprintf(`{"title":"T","url":%q}`, u), "erin@example.com")
			require.Equal(t, http.StatusCreated, rr.Code)
		}
		rr := do(t, h, http.MethodPost, `{"title":"T","url":"https://other.example.com"}`, "frank@example.com")
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = do(t, h, http.MethodGet, "", "erin@example.com")
		require.Equal(t, http.StatusOK, rr.Code)
		list := decode[favorite.ListResponse](t, rr)
		require.Len(t, list.Favorites, 3)
		assert.Equal(t, "https://c.example.com", list.Favorites[0].URL)
		assert.Equal(t, "https://a.example.com", list.Favorites[2].URL)
	})
}

/*──────────────────────── 異常系 ────────────────────────*/

type failingService struct{}

func (failingService) Add(context.Context, string, favUC.AddInput) (*entity.Favorite, bool, error) {
	return nil, false, errors.New("create favorite: db is locked postgres://u:secret@db")
}

func (failingService) List(context.Context, string) ([]*entity.Favorite, error) {
	return nil, errors.New("list favorites: connection reset")
}

func TestHandlers_InternalErrors(t *testing.T) {
	h := newMux(failingService{})

	rr := do(t, h, http.MethodPost, `{"title":"X","url":"https://x.example.com"}`, "a@example.com")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", decode[map[string]string](t, rr)["error"])

	rr = do(t, h, http.MethodGet, "", "a@example.com")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection reset")
}
