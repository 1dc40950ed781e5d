package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

type PostgresSlots struct {
	db *sql.DB
}

func NewPostgresSlots(db *sql.DB) *PostgresSlots {
	return &PostgresSlots{db: db}
}

// OpenPostgres connects with lib/pq and makes sure the slot table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSlots, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	slots := NewPostgresSlots(db)
	if err := slots.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return slots, nil
}

func (p *PostgresSlots) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS storage_slots (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create storage_slots: %w", err)
	}
	return nil
}

func (p *PostgresSlots) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM storage_slots WHERE key = $1`
	var value string
	err := p.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return []byte(value), nil
}

func (p *PostgresSlots) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO storage_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := p.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (p *PostgresSlots) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM storage_slots WHERE key = $1`
	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (p *PostgresSlots) Close() error {
	return p.db.Close()
}
