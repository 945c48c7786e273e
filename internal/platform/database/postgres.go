package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/georgemunganga/gastrotech-backend/internal/config"
)

//go:embed schema.sql
var schema string

const (
	maxRetries = 5
	retryDelay = 2 * time.Second
	pingTTL    = 5 * time.Second
)

// Open connects to postgres, applies the pool settings and waits for the
// server to answer a ping, retrying a few times while it starts up.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	for i := 1; i <= maxRetries; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTTL)
		err = db.PingContext(pctx)
		cancel()
		if err == nil {
			return db, nil
		}
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("db ping canceled: %w", ctx.Err())
		}
	}
	_ = db.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxRetries, err)
}

// EnsureSchema creates missing tables. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// IsEmpty reports whether table has no rows. Used to decide whether to seed fixtures.
func IsEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s)`, table)).Scan(&exists)
	return !exists, err
}

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface{ Scan(dest ...interface{}) error }

// NullString maps "" to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
