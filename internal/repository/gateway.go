package repository

import (
	"context"
	"fmt"
)

// OpenGateway opens the Gateway for driver. PostgreSQL goes through pgxpool,
// SQLite and DuckDB through database/sql.
func OpenGateway(ctx context.Context, driver, dsn string, maxConns int) (Gateway, error) {
	dialect, err := ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	if dialect == DialectPostgres {
		pool, err := NewPool(ctx, dsn, int32(maxConns))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
		}
		return NewPgGateway(pool), nil
	}
	return OpenSQLGateway(ctx, dialect, dsn, maxConns)
}
