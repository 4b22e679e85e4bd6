package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

func TestTranslate_SQLSTATE(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code string
		want storage.Kind
	}{
		{"23505", storage.KindUniqueness},
		{"40001", storage.KindConcurrency},
		{"40P01", storage.KindConcurrency},
		{"08006", storage.KindConnectivity},
		{"08001", storage.KindConnectivity},
		{"53300", storage.KindConnectivity},
		{"57P01", storage.KindConnectivity},
		{"57P03", storage.KindConnectivity},
		{"23503", storage.KindWrite},
		{"22001", storage.KindWrite},
		{"42P01", storage.KindWrite},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			err := Translate(&pgconn.PgError{Code: tt.code}, "postgres: exec")
			assert.Equal(t, tt.want, storage.KindOf(err))
		})
	}
}

func TestTranslate_NoRows(t *testing.T) {
	t.Parallel()
	err := Translate(pgx.ErrNoRows, "postgres: scan")

	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, storage.KindUnknown, storage.KindOf(err))
}

func TestTranslate_Deadline(t *testing.T) {
	t.Parallel()
	err := Translate(context.DeadlineExceeded, "postgres: query")

	assert.Equal(t, storage.KindConnectivity, storage.KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTranslate_ForeignErrorUnchanged(t *testing.T) {
	t.Parallel()
	raw := errors.New("cannot scan into *int")

	assert.Same(t, raw, Translate(raw, "postgres: scan"))
	assert.NoError(t, Translate(nil, "postgres: scan"))
}
