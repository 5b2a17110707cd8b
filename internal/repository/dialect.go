package repository

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/broadcastcontacts/backend/internal/model"
	"github.com/jmoiron/sqlx"
)

// Dialect captures the few SQL differences between the supported drivers.
// Queries are always written with "?" placeholders and rebound per dialect.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
	DialectDuckDB   Dialect = "duckdb"
)

// ParseDialect maps a configured driver name to its dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(driver)); d {
	case DialectPostgres, DialectSQLite, DialectDuckDB:
		return d, nil
	case "pgx", "postgresql":
		return DialectPostgres, nil
	case "sqlite":
		return DialectSQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// Rebind rewrites "?" placeholders into the dialect's bind style.
func (d Dialect) Rebind(query string) string {
	if d == DialectPostgres {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return sqlx.Rebind(sqlx.QUESTION, query)
}

// DateOf returns the expression for the calendar date of a timestamp column.
func (d Dialect) DateOf(column string) string {
	if d == DialectSQLite {
		return "date(" + column + ")"
	}
	return "CAST(" + column + " AS DATE)"
}

// DateArg returns the bound value compared against DateOf.
func (d Dialect) DateArg(t time.Time) any {
	if d == DialectPostgres {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t.Format(model.DateLayout)
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name is a plain or schema-qualified identifier.
func ValidTableName(name string) bool {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if !identPattern.MatchString(p) {
			return false
		}
	}
	return true
}

// quoteIdent double-quotes each part of an identifier that already passed
// ValidTableName. Double quotes work on every supported dialect.
func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, ".")
}
