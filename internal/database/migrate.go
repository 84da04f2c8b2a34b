package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate runs a goose command (up, down, status, redo, reset, version, up-to, down-to)
// against the embedded migrations.
func Migrate(ctx context.Context, connString, command string, args ...string) error {
	db, err := sql.Open(MigrationDriver, connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToOpenMigrationDB, err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(MigrationDialect); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetDialect, err)
	}

	slog.Default().Info(LogMsgRunningMigrations, "command", command)
	if err := goose.RunContext(ctx, command, db, MigrationsDir, args...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}
	return nil
}

// MigrateUp applies every pending migration
func MigrateUp(ctx context.Context, connString string) error {
	return Migrate(ctx, connString, "up")
}
