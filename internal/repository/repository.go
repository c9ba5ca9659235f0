package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"projectdesk/pkg/metrics"
)

var timeNow = time.Now

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// ErrConstraintViolation is returned by drivers that enforce integrity
// constraints themselves.
var ErrConstraintViolation = errors.New("constraint violation")

// withConn acquires a pool connection for the duration of fn and always
// releases it.
func withConn(ctx context.Context, db *pgxpool.Pool, fn func(conn *pgxpool.Conn) error) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()
	return fn(conn)
}

func observe(operation, table string, start time.Time) {
	metrics.RecordDBQueryDuration(operation, table, time.Since(start))
}

// IsConstraintViolation reports whether err is an integrity constraint
// violation: ErrConstraintViolation or a PostgreSQL SQLSTATE class 23 error.
func IsConstraintViolation(err error) bool {
	if errors.Is(err, ErrConstraintViolation) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
	}
	return false
}
