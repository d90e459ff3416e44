package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// MigratePostgres brings the Postgres schema up to date.
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, goose.DialectPostgres, "migrations/postgres")
}

// MigrateSQLite brings the SQLite schema up to date.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, goose.DialectSQLite3, "migrations/sqlite")
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	migrations, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
