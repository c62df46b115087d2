package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresKV keeps slots in a single kv_slots table. TTL is ignored: the
// session slots are durable until overwritten.
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV { return &PostgresKV{db: db} }

// Init creates the kv_slots table when missing.
func (p *PostgresKV) Init(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS kv_slots (
			slot_key   TEXT PRIMARY KEY,
			slot_value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure kv_slots table: %w", err)
	}
	return nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := p.db.QueryRowContext(ctx,
		`SELECT slot_value FROM kv_slots WHERE slot_key = $1`, key).Scan(&val)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value string, _ time.Duration) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO kv_slots (slot_key, slot_value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (slot_key)
		 DO UPDATE SET slot_value = EXCLUDED.slot_value,
		               updated_at = now()`,
		key, value)
	return err
}
