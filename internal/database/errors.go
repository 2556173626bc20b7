package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a procedure reports that the target row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on unique key violations.
	ErrDuplicate = errors.New("record already exists")
	// ErrReferenced is returned on foreign key violations, in either direction.
	ErrReferenced = errors.New("record is referenced by or references another record")
	// ErrRejected is returned when a procedure or a table constraint refuses the input.
	ErrRejected = errors.New("record rejected by the database")
)

// MySQL server error numbers.
const (
	mysqlNoReferencedRow  = 1216
	mysqlRowIsReferenced  = 1217
	mysqlBadNull          = 1048
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced2 = 1451
	mysqlNoReferencedRow2 = 1452
	mysqlSignalNotFound   = 1643
	mysqlSignalException  = 1644
	mysqlCheckViolated    = 3819
)

// classify maps a driver error onto one of the sentinel errors, or nil.
func classify(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlSignalNotFound:
			return ErrNotFound
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlRowIsReferenced2, mysqlNoReferencedRow2:
			return ErrReferenced
		case mysqlBadNull, mysqlCheckViolated, mysqlSignalException:
			return ErrRejected
		}
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "P0002", "02000":
			return ErrNotFound
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrReferenced
		case "23502", "23514", "P0001", "22003":
			return ErrRejected
		}
	}
	return nil
}

// wrapError annotates a failed operation and attaches the matching sentinel.
func wrapError(action string, err error) error {
	if sentinel := classify(err); sentinel != nil {
		return fmt.Errorf("failed to %s: %w: %w", action, sentinel, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
