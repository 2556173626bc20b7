package database

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects how procedure calls are spelled for a database server.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// execCall returns the statement that invokes a procedure with n positional arguments.
func (d Dialect) execCall(procedure string, n int) string {
	return "CALL " + procedure + "(" + d.placeholders(n) + ")"
}

// queryCall returns the statement that reads the result set of a procedure.
// Postgres procedures cannot return rows, so reads go through set-returning functions.
func (d Dialect) queryCall(procedure string, n int) string {
	if d == Postgres {
		return "SELECT * FROM " + procedure + "(" + d.placeholders(n) + ")"
	}
	return d.execCall(procedure, n)
}

func (d Dialect) placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	parts := make([]string, n)
	for i := range parts {
		if d == Postgres {
			parts[i] = "$" + strconv.Itoa(i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}
