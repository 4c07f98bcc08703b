package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Varun5711/bookmarkd/internal/database/migrations"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

func init() {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		panic(err)
	}
}

// OpenSQL wraps the primary pool in a database/sql handle for goose. Closing
// the handle does not close the pool.
func (m *DBManager) OpenSQL() *sql.DB {
	return stdlib.OpenDBFromPool(m.primary)
}

// Migrate applies every pending embedded migration on the primary.
func (m *DBManager) Migrate(ctx context.Context) error {
	db := m.OpenSQL()
	defer db.Close()

	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func MigrateDown(ctx context.Context, db *sql.DB) error {
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

func MigrationStatus(ctx context.Context, db *sql.DB) error {
	return goose.StatusContext(ctx, db, ".")
}

func MigrationVersion(ctx context.Context, db *sql.DB) (int64, error) {
	return goose.GetDBVersionContext(ctx, db)
}
