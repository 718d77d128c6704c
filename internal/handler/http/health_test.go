package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func serveHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "no-cache, no-store, must-revalidate", rr.Header().Get("Cache-Control"))
	return rr.Code, resp
}

func TestHealthHandler(t *testing.T) {
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("healthy without cache", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()

		code, resp := serveHealth(t, &HealthHandler{DB: db, Version: "v1.2.3", Now: func() time.Time { return fixed }})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "v1.2.3", resp.Version)
		assert.Equal(t, "2026-10-01T12:00:00Z", resp.Timestamp)
		assert.Equal(t, "healthy", resp.Checks["database"].Status)
		assert.Equal(t, "disabled", resp.Checks["cache"].Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing().WillReturnError(sql.ErrConnDone)

		code, resp := serveHealth(t, &HealthHandler{DB: db})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "database ping failed", resp.Checks["database"].Message)
	})

	t.Run("database not configured", func(t *testing.T) {
		code, resp := serveHealth(t, &HealthHandler{})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not configured", resp.Checks["database"].Message)
	})

	t.Run("redis up", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		code, resp := serveHealth(t, &HealthHandler{DB: db, Redis: rdb})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", resp.Checks["cache"].Status)
		assert.Empty(t, resp.Checks["cache"].Message)
	})

	t.Run("redis down is degraded not unhealthy", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = rdb.Close() })
		mr.Close()

		code, resp := serveHealth(t, &HealthHandler{DB: db, Redis: rdb})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "degraded", resp.Checks["cache"].Status)
	})
}

func TestReadyHandler(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()

		rr := httptest.NewRecorder()
		(&ReadyHandler{DB: db}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ready", rr.Body.String())
	})

	t.Run("not ready", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing().WillReturnError(sql.ErrConnDone)

		rr := httptest.NewRecorder()
		(&ReadyHandler{DB: db}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.NotContains(t, rr.Body.String(), sql.ErrConnDone.Error())
	})

	t.Run("no database", func(t *testing.T) {
		rr := httptest.NewRecorder()
		(&ReadyHandler{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestLiveHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	LiveHandler{}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alive", rr.Body.String())
}
