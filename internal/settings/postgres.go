// internal/settings/postgres.go
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore persists settings groups as JSON records keyed by group name.
//
// Expected table:
//
//	CREATE TABLE site_settings (
//	    group_name TEXT PRIMARY KEY,
//	    record     JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Get(ctx context.Context, group Group, out interface{}) error {
	var raw []byte
	query := `SELECT record FROM site_settings WHERE group_name = $1`
	err := p.db.QueryRowContext(ctx, query, string(group)).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("query group %s: %w", group, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal group %s: %w", group, err)
	}
	return nil
}

func (p *PostgresStore) Put(ctx context.Context, group Group, record interface{}) error {
	data, err := marshalRecord(record)
	if err != nil {
		return err
	}
	query := `INSERT INTO site_settings (group_name, record, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (group_name) DO UPDATE SET record = $2, updated_at = now()`
	if _, err := p.db.ExecContext(ctx, query, string(group), data); err != nil {
		return fmt.Errorf("store group %s: %w", group, err)
	}
	return nil
}
