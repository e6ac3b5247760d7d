package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Ссылки создаются сервисом управления ссылками, здесь только таблицы,
// которые читает и пишет путь редиректа
const (
	linksSchema = `
	CREATE TABLE IF NOT EXISTS links (
		id           TEXT PRIMARY KEY,
		short_code   VARCHAR(64) NOT NULL,
		original_url TEXT NOT NULL,
		user_id      TEXT NOT NULL,
		is_active    BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at   TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT links_short_code_unique UNIQUE (short_code)
	);
	CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id);`

	clicksSchema = `
	CREATE TABLE IF NOT EXISTS clicks (
		id         UUID PRIMARY KEY,
		link_id    TEXT NOT NULL REFERENCES links(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		referrer   TEXT,
		user_agent TEXT NOT NULL DEFAULT '',
		device     VARCHAR(16) NOT NULL,
		browser    VARCHAR(32) NOT NULL,
		os         VARCHAR(32) NOT NULL,
		ip         TEXT,
		country    VARCHAR(64),
		city       TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_clicks_link_id_created_at ON clicks(link_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_clicks_user_id_created_at ON clicks(user_id, created_at);`
)

// EnsureSchema создает таблицы links и clicks, если их еще нет
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, linksSchema); err != nil {
		return fmt.Errorf("failed to create links table: %w", err)
	}

	if _, err := db.ExecContext(ctx, clicksSchema); err != nil {
		return fmt.Errorf("failed to create clicks table: %w", err)
	}

	return nil
}
