package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables the service needs. Every statement is
// idempotent, so it runs on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         SERIAL PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS focus_tasks (
		user_id     INTEGER PRIMARY KEY,
		task_id     TEXT NOT NULL,
		description TEXT NOT NULL,
		set_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS focus_suggestions (
		user_id    INTEGER PRIMARY KEY REFERENCES focus_tasks (user_id) ON DELETE CASCADE,
		task_id    TEXT NOT NULL,
		text       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS analytics_events (
		id               BIGSERIAL PRIMARY KEY,
		event_name       TEXT NOT NULL,
		event_time       TIMESTAMPTZ NOT NULL,
		user_id          INTEGER NOT NULL,
		session_id       TEXT,
		platform         TEXT NOT NULL,
		app_version      TEXT NOT NULL DEFAULT '',
		device_locale    TEXT,
		source_event_key TEXT UNIQUE,
		properties       JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
	`CREATE INDEX IF NOT EXISTS analytics_events_user_time_idx
		ON analytics_events (user_id, event_time DESC)`,
}
