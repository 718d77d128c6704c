package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the DDL flavour for MigrateUp.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// DialectFor maps a driver name to its Dialect.
func DialectFor(driver string) Dialect {
	if driver == DriverSQLite {
		return SQLite
	}
	return Postgres
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id         UUID PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS favorites (
    id        UUID PRIMARY KEY,
    user_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title     TEXT NOT NULL,
    url       TEXT NOT NULL,
    image_url TEXT,
    source    TEXT NOT NULL DEFAULT 'Unknown',
    added_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT favorites_user_url_key UNIQUE (user_id, url)
)`,
	// 一覧取得用 (ORDER BY added_at DESC)
	`CREATE INDEX IF NOT EXISTS idx_favorites_user_added_at ON favorites(user_id, added_at DESC)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS favorites (
    id        TEXT PRIMARY KEY,
    user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title     TEXT NOT NULL,
    url       TEXT NOT NULL,
    image_url TEXT,
    source    TEXT NOT NULL DEFAULT 'Unknown',
    added_at  DATETIME NOT NULL,
    UNIQUE (user_id, url)
)`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_user_added_at ON favorites(user_id, added_at DESC)`,
}

// MigrateUp creates the users and favorites tables. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, d Dialect) error {
	stmts := postgresSchema
	if d == SQLite {
		stmts = sqliteSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	}
	return nil
}

// MigrateDown drops all tables created by MigrateUp.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS favorites`,
		`DROP TABLE IF EXISTS users`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}
