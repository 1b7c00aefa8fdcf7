package repositories

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"webapp/internal/migrations"
)

// RunMigrations applies the embedded schema migrations against db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
