package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgGateway is the PostgreSQL Gateway backed by a pgx connection pool.
type PgGateway struct {
	pool *pgxpool.Pool
}

// NewPgGateway wraps an existing pool.
func NewPgGateway(pool *pgxpool.Pool) *PgGateway {
	return &PgGateway{pool: pool}
}

// Ensure PgGateway implements Gateway at compile time.
var _ Gateway = (*PgGateway)(nil)

// Acquire checks out one pooled connection.
func (g *PgGateway) Acquire(ctx context.Context) (Conn, error) {
	c, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return &pgConn{conn: c}, nil
}

func (g *PgGateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

func (g *PgGateway) Dialect() Dialect {
	return DialectPostgres
}

func (g *PgGateway) Close() {
	g.pool.Close()
}

type pgConn struct {
	conn *pgxpool.Conn
}

func (c *pgConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, query, args...)
}

func (c *pgConn) Release() {
	c.conn.Release()
}
