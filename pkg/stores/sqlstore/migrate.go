package sqlstore

import (
	"context"
	"database/sql"
	"embed"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending schema migration to the database at dsn.
// goose keeps its settings in package state, so Migrate must not run
// concurrently with other goose users in the same process.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return storage.NewFault(storage.KindConnectivity, "sqlstore: open", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return storage.NewFault(storage.KindWrite, "sqlstore: migrate", err)
	}
	return nil
}
