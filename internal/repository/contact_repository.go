package repository

import (
	"context"
	"fmt"

	"github.com/broadcastcontacts/backend/internal/model"
)

// SQLContactRepository implements ContactRepository on top of a Gateway.
// Every call acquires one connection and releases it before returning.
type SQLContactRepository struct {
	gw      Gateway
	table   string
	variant model.Variant
}

// NewContactRepository creates a repository reading from table through gw.
// table must satisfy ValidTableName; config validation enforces it.
func NewContactRepository(gw Gateway, table string, variant model.Variant) *SQLContactRepository {
	return &SQLContactRepository{gw: gw, table: table, variant: variant}
}

// Ensure SQLContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*SQLContactRepository)(nil)

// Variant returns the projection this repository reads.
func (r *SQLContactRepository) Variant() model.Variant {
	return r.variant
}

// ListFilterOptions returns the distinct non-null values of every filterable
// column, each sorted ascending. Mobile numbers also exclude empty strings.
func (r *SQLContactRepository) ListFilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	conn, err := r.gw.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	opts := model.EmptyFilterOptions(r.variant)
	if opts.ContactNames, err = r.distinct(ctx, conn, colContactName, false); err != nil {
		return nil, err
	}
	if opts.Headings, err = r.distinct(ctx, conn, colHeading, false); err != nil {
		return nil, err
	}
	if r.variant.HasMobile() {
		if opts.MobileNumbers, err = r.distinct(ctx, conn, colMobilePhone, true); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func (r *SQLContactRepository) distinct(ctx context.Context, conn Conn, column string, skipEmpty bool) ([]string, error) {
	rows, err := conn.Query(ctx, BuildDistinctQuery(r.table, column, skipEmpty))
	if err != nil {
		return nil, fmt.Errorf("%w: distinct %s: %w", ErrQuery, column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", ErrQuery, column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: distinct %s: %w", ErrQuery, column, err)
	}
	return values, nil
}

// QueryContacts returns the rows matching every criterion in filter, in the
// filter's sort order. Criteria for columns the variant lacks are ignored.
func (r *SQLContactRepository) QueryContacts(ctx context.Context, filter model.ContactFilter) ([]*model.Contact, error) {
	conn, err := r.gw.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query, args := BuildContactQuery(r.gw.Dialect(), r.table, r.variant, filter)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: contacts: %w", ErrQuery, err)
	}
	defer rows.Close()

	extended := r.variant.HasMobile()
	contacts := []*model.Contact{}
	for rows.Next() {
		c := model.Contact{Extended: extended}
		dest := []any{&c.ContactName, &c.Heading, &c.CreatedAt}
		if extended {
			dest = []any{&c.ContactName, &c.Heading, &c.MobilePhone, &c.CreatedAt}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan contact: %w", ErrQuery, err)
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: contacts: %w", ErrQuery, err)
	}
	return contacts, nil
}
