// Package repository implements MySQL persistence for residents,
// hostels, rooms, allocation requests, the fairness cursor and
// approved pairings.  Repositories accept either a *sql.DB or a
// *sql.Tx through the runner interface so the same query code serves
// both transactional and plain reads.  Driver-specific failure codes
// are classified here, once, into the typed domain errors the
// workflows understand; nothing above this package ever inspects a
// MySQL error number.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
)

// MySQL server error numbers classified by this package.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// runner abstracts the query surface shared by *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// classify wraps driver-level concurrency failures with the retryable
// marker.  Deadlocks and lock wait timeouts are the MySQL signals for
// a transient write conflict; everything else passes through
// unmodified.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var my *mysql.MySQLError
	if errors.As(err, &my) {
		switch my.Number {
		case mysqlErrDeadlock, mysqlErrLockWaitTimeout:
			return apperr.Transient(err)
		}
	}
	return err
}

// isDuplicate reports whether err is a MySQL duplicate-key violation.
func isDuplicate(err error) bool {
	var my *mysql.MySQLError
	return errors.As(err, &my) && my.Number == mysqlErrDuplicateEntry
}
