package pgsql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// execRowsAffected runs a write statement and returns how many rows it touched.
func (r *BaseRepository) execRowsAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isValidID reports whether id can be compared against a uuid column.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
