package repository

import (
	"context"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLGateway is a Gateway over database/sql, used for SQLite and DuckDB sources.
type SQLGateway struct {
	db      *sqlx.DB
	dialect Dialect
}

// OpenSQLGateway opens and pings a database/sql data store.
func OpenSQLGateway(ctx context.Context, dialect Dialect, dsn string, maxConns int) (*SQLGateway, error) {
	db, err := sqlx.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrConnectivity, dialect, err)
	}
	return NewSQLGateway(db, dialect), nil
}

// NewSQLGateway wraps an already opened database.
func NewSQLGateway(db *sqlx.DB, dialect Dialect) *SQLGateway {
	return &SQLGateway{db: db, dialect: dialect}
}

// Ensure SQLGateway implements Gateway at compile time.
var _ Gateway = (*SQLGateway)(nil)

// Acquire reserves one connection from the database/sql pool.
func (g *SQLGateway) Acquire(ctx context.Context) (Conn, error) {
	c, err := g.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return &sqlConn{conn: c}, nil
}

func (g *SQLGateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *SQLGateway) Dialect() Dialect {
	return g.dialect
}

func (g *SQLGateway) Close() {
	_ = g.db.Close()
}

type sqlConn struct {
	conn *sqlx.Conn
}

func (c *sqlConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &sqlRows{rows: rows}, nil
}

// Release returns the connection to the pool.
func (c *sqlConn) Release() {
	_ = c.conn.Close()
}

// sqlRows adapts *sqlx.Rows, whose Close returns an error, to Rows.
type sqlRows struct {
	rows *sqlx.Rows
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlRows) Err() error             { return r.rows.Err() }
func (r *sqlRows) Close()                 { _ = r.rows.Close() }
