package repository

import (
	"context"

	"github.com/broadcastcontacts/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// Gateway hands out exclusive data store connections, one per operation.
// Callers must Release every connection they acquire.
type Gateway interface {
	DB
	Acquire(ctx context.Context) (Conn, error)
	Dialect() Dialect
	Close()
}

// Conn is a single acquired connection.
type Conn interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Release()
}

// Rows is the cursor returned by Conn.Query. pgx.Rows satisfies it as is.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// ContactRepository is the read-only persistence interface for broadcast contacts.
type ContactRepository interface {
	ListFilterOptions(ctx context.Context) (*model.FilterOptions, error)
	QueryContacts(ctx context.Context, filter model.ContactFilter) ([]*model.Contact, error)
}
