package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/herculesvale/vale-service/internal/config"
)

// NewPostgresConnection opens a pooled connection and verifies it with a
// bounded ping.
func NewPostgresConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	return db, nil
}

// Bootstrap ensures the service tables exist. Idempotent.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS vouchers (
			id UUID PRIMARY KEY,
			folio TEXT NOT NULL UNIQUE,
			distributor_id TEXT NOT NULL,
			sub_client_id UUID,
			sub_client_name TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0 AND amount <= 5000),
			is_used BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			used_at TIMESTAMPTZ,
			expires_at TIMESTAMPTZ NOT NULL,
			payment_type TEXT NOT NULL,
			payment_start_date TIMESTAMPTZ NOT NULL,
			installments INT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_vouchers_distributor ON vouchers (distributor_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS sub_clients (
			id UUID PRIMARY KEY,
			distributor_id TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			phone TEXT NOT NULL,
			date_of_birth DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sub_clients_distributor ON sub_clients (distributor_id, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	return nil
}
