package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the PostgreSQL DDL for session state. Statements are idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		language TEXT NOT NULL DEFAULT 'en',
		has_seen_onboarding BOOLEAN NOT NULL DEFAULT FALSE,
		user_name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS liked_products (
		session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		position BIGSERIAL,
		liked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (session_id, product_id)
	);

	CREATE INDEX IF NOT EXISTS idx_liked_products_position ON liked_products(session_id, position);
`

// Migrate applies Schema to the database behind pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
