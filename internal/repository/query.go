package repository

import (
	"strings"

	"github.com/broadcastcontacts/backend/internal/model"
)

// Column allow-list. Only these identifiers are ever written into SQL text.
const (
	colContactName = `"ContactName"`
	colHeading     = `"Heading"`
	colMobilePhone = `"MobilePhone"`
	colCreatedAt   = `"CreatedAt"`
)

// WhereBuilder assembles a conjunction of parameterized conditions.
// Clauses use "?" placeholders; values are only ever bound, never interpolated.
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates an empty WhereBuilder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddClause adds a raw condition with its bound arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn adds "column IN (?, ?, ...)" with one placeholder per value.
// An empty values slice adds nothing.
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, column+" IN ("+strings.Join(placeholders, ", ")+")")
	return wb
}

// Build returns the clause prefixed with "WHERE", or "" when no conditions were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(wb.clauses, " AND "), wb.args
}

// Len returns the number of conditions added so far.
func (wb *WhereBuilder) Len() int {
	return len(wb.clauses)
}

// contactColumns is the fixed projection for a variant.
func contactColumns(v model.Variant) []string {
	if v.HasMobile() {
		return []string{colContactName, colHeading, colMobilePhone, colCreatedAt}
	}
	return []string{colContactName, colHeading, colCreatedAt}
}

// orderBy returns the ORDER BY clause for s. Unknown values fall back to
// the newest-first order.
func orderBy(s model.SortOrder) string {
	if s == model.SortHeadingName {
		return "ORDER BY " + colHeading + ", " + colContactName
	}
	return "ORDER BY " + colCreatedAt + " DESC NULLS LAST, " + colContactName
}

// BuildContactQuery builds the /contacts SELECT for the given filter.
// The returned SQL is already rebound to the dialect's placeholder style.
func BuildContactQuery(d Dialect, table string, v model.Variant, f model.ContactFilter) (string, []any) {
	wb := NewWhereBuilder().
		AddIn(colContactName, f.ContactNames).
		AddIn(colHeading, f.Headings)
	if v.HasMobile() {
		wb.AddIn(colMobilePhone, f.MobileNumbers)
	}
	if f.CreatedDate != nil {
		wb.AddClause(d.DateOf(colCreatedAt)+" = ?", d.DateArg(*f.CreatedDate))
	}
	where, args := wb.Build()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(contactColumns(v), ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(table))
	if where != "" {
		sb.WriteString(" ")
		sb.WriteString(where)
	}
	sb.WriteString(" ")
	sb.WriteString(orderBy(f.Sort))
	return d.Rebind(sb.String()), args
}

// BuildDistinctQuery builds the distinct-values query behind a filter option list.
// Empty strings are excluded as well as NULLs when skipEmpty is set.
func BuildDistinctQuery(table, column string, skipEmpty bool) string {
	q := "SELECT DISTINCT " + column + " FROM " + quoteIdent(table) +
		" WHERE " + column + " IS NOT NULL"
	if skipEmpty {
		q += " AND " + column + " <> ''"
	}
	return q + " ORDER BY " + column
}
