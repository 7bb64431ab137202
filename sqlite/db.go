package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	key         TEXT PRIMARY KEY,
	full_name   TEXT NOT NULL DEFAULT '',
	college     TEXT NOT NULL DEFAULT '',
	department  TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	member2     TEXT NOT NULL DEFAULT '',
	member3     TEXT NOT NULL DEFAULT '',
	member4     TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	updated_at  TEXT NOT NULL
)`

type DB struct {
	db *sql.DB
}

// Open opens the database file at path, creating it and the drafts table
// if needed.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}
	// One writer at a time avoids SQLITE_BUSY between the autosaver and the
	// final save.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create drafts table: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
