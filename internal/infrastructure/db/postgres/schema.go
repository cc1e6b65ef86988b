package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	idempotencyKeyIndex = "swap_requests_idempotency_key_uniq"
	openPairIndex       = "swap_requests_open_pair_uniq"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'USER',
		bio           TEXT NOT NULL DEFAULT '',
		rating        DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		skill_name     TEXT NOT NULL,
		skill_category TEXT NOT NULL,
		skill_level    TEXT NOT NULL,
		type           TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS skills_user_type_idx ON skills (user_id, type)`,
	`CREATE TABLE IF NOT EXISTS swap_requests (
		id              TEXT PRIMARY KEY,
		user_a_id       TEXT NOT NULL REFERENCES users(id),
		user_b_id       TEXT NOT NULL REFERENCES users(id),
		skill_a_id      TEXT NOT NULL,
		skill_b_id      TEXT NOT NULL,
		match_score     DOUBLE PRECISION NOT NULL DEFAULT 0,
		state           TEXT NOT NULL,
		message         TEXT,
		idempotency_key TEXT,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL,
		CHECK (user_a_id <> user_b_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + idempotencyKeyIndex + `
		ON swap_requests (idempotency_key) WHERE idempotency_key IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + openPairIndex + `
		ON swap_requests (user_a_id, user_b_id, skill_a_id, skill_b_id)
		WHERE state IN ('PROPOSED', 'ACCEPTED', 'IN_PROGRESS')`,
	`CREATE INDEX IF NOT EXISTS swap_requests_user_a_idx ON swap_requests (user_a_id)`,
	`CREATE INDEX IF NOT EXISTS swap_requests_user_b_idx ON swap_requests (user_b_id)`,
	`CREATE TABLE IF NOT EXISTS swap_events (
		id         BIGSERIAL PRIMARY KEY,
		swap_id    TEXT NOT NULL,
		user_a_id  TEXT NOT NULL,
		user_b_id  TEXT NOT NULL,
		from_state TEXT NOT NULL DEFAULT '',
		to_state   TEXT NOT NULL,
		actor_id   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS swap_events_swap_idx ON swap_events (swap_id, id)`,
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
