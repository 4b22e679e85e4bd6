package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

// SQLSTATE codes with a specific storage meaning.
const (
	sqlstateUniqueViolation      = "23505"
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// Translate converts a pgx error into the storage vocabulary:
//
//   - pgx.ErrNoRows becomes storage.ErrNotFound.
//   - Connection errors, network errors, timeouts and SQLSTATE classes
//     08 (connection), 53 (resources) and 57P0x (shutdown) are
//     KindConnectivity.
//   - 40001 and 40P01 are KindConcurrency.
//   - 23505 is KindUniqueness.
//   - Any other server error is KindWrite.
//
// Errors the driver did not produce are returned unchanged. Translate
// returns nil for nil.
func Translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return storage.NewFault(sqlstateKind(pgErr.Code), op, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr),
		errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		pgconn.Timeout(err):
		return storage.NewFault(storage.KindConnectivity, op, err)
	}
	return err
}

func sqlstateKind(code string) storage.Kind {
	switch {
	case code == sqlstateUniqueViolation:
		return storage.KindUniqueness
	case code == sqlstateSerializationFailure, code == sqlstateDeadlockDetected:
		return storage.KindConcurrency
	case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "53"), strings.HasPrefix(code, "57P0"):
		return storage.KindConnectivity
	default:
		return storage.KindWrite
	}
}
