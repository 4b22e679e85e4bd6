// Package sqlstore keeps fleets, flight deals and users in PostgreSQL.
//
// Stores speak the storage vocabulary: a missing row is
// [storage.ErrNotFound], a stale Version on update is a
// [storage.ErrVersionConflict] concurrency fault, and driver failures are
// the faults produced by the postgres client. Stores never log.
//
// Every table carries a version column. Insert stores Version 1; Update
// matches on the submitted Version and increments it.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/StricklySoft/jaunts-core/pkg/clients/postgres"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

// Querier runs SQL. [*postgres.Client] satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Querier = (*postgres.Client)(nil)

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// updateOne runs an optimistic UPDATE ... RETURNING version. No row means
// either the record is gone or its version moved; exists tells them apart.
func updateOne(ctx context.Context, db Querier, op, sql string, exists func() error, args ...any) (int64, error) {
	var version int64
	err := db.QueryRow(ctx, sql, args...).Scan(&version)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}
	if err := exists(); err != nil {
		return 0, err
	}
	return 0, storage.VersionConflict(op)
}

// deleteOne removes one row by id.
func deleteOne(ctx context.Context, db Querier, op, sql string, id any) error {
	tag, err := db.Exec(ctx, sql, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %v: %w", op, id, storage.ErrNotFound)
	}
	return nil
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, op string, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, postgres.Translate(err, op)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.Translate(err, op)
	}
	return out, nil
}
