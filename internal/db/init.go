// Package db opens the PostgreSQL connection and brings the schema up to
// date with the embedded goose migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"contactdesk/internal/db/migrations"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// InitPostgres opens a connection to the database at dsn, verifies it with
// a ping and applies any pending migrations.
func InitPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
