package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order. Every statement is idempotent.
var schema = []struct {
	name string
	stmt string
}{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    image         TEXT,
    bio           TEXT,
    custom_link   TEXT UNIQUE,
    role          VARCHAR(10) NOT NULL DEFAULT 'USER' CHECK (role IN ('USER', 'ADMIN')),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{"newsletters", `
CREATE TABLE IF NOT EXISTS newsletters (
    id            TEXT PRIMARY KEY,
    title         TEXT NOT NULL,
    subtitle      TEXT,
    content       TEXT NOT NULL,
    image         TEXT,
    category      VARCHAR(20) CHECK (category IN ('Technology', 'Art', 'Politics', 'Lifestyle',
                  'Business', 'Science', 'Health', 'Education', 'Entertainment', 'Other')),
    published     BOOLEAN NOT NULL DEFAULT FALSE,
    scheduled_for TIMESTAMPTZ,
    author_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{"follows", `
CREATE TABLE IF NOT EXISTS follows (
    follower_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    following_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (follower_id, following_id),
    CHECK (follower_id <> following_id)
)`},
	{"daily_newspapers", `
CREATE TABLE IF NOT EXISTS daily_newspapers (
    id         TEXT PRIMARY KEY,
    date       DATE NOT NULL UNIQUE,
    title      TEXT NOT NULL,
    summary    TEXT NOT NULL,
    image      TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{"daily_newspaper_items", `
CREATE TABLE IF NOT EXISTS daily_newspaper_items (
    id            TEXT PRIMARY KEY,
    newspaper_id  TEXT NOT NULL REFERENCES daily_newspapers(id) ON DELETE CASCADE,
    category      VARCHAR(20) NOT NULL,
    highlight     BOOLEAN NOT NULL DEFAULT FALSE,
    summary       TEXT NOT NULL,
    newsletter_id TEXT REFERENCES newsletters(id) ON DELETE SET NULL
)`},
	// items outlive their newsletter; upgrades databases created with ON DELETE CASCADE
	{"daily_newspaper_items_newsletter_fk", `
ALTER TABLE daily_newspaper_items
    ALTER COLUMN newsletter_id DROP NOT NULL,
    DROP CONSTRAINT IF EXISTS daily_newspaper_items_newsletter_id_fkey,
    ADD CONSTRAINT daily_newspaper_items_newsletter_id_fkey
        FOREIGN KEY (newsletter_id) REFERENCES newsletters(id) ON DELETE SET NULL`},
	// ORDER BY created_at DESC on listings and the feed
	{"idx_newsletters_author_created", `CREATE INDEX IF NOT EXISTS idx_newsletters_author_created ON newsletters(author_id, created_at DESC)`},
	// created-today scan for the daily newspaper
	{"idx_newsletters_published_created", `CREATE INDEX IF NOT EXISTS idx_newsletters_published_created ON newsletters(created_at) WHERE published`},
	// follower counts
	{"idx_follows_following", `CREATE INDEX IF NOT EXISTS idx_follows_following ON follows(following_id)`},
	{"idx_items_newspaper", `CREATE INDEX IF NOT EXISTS idx_items_newspaper ON daily_newspaper_items(newspaper_id)`},
}

// MigrateUp creates the tables and indexes if they do not exist.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
	}
	return nil
}
