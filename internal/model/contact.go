package model

import (
	"time"

	"github.com/goccy/go-json"
)

// TimestampLayout is the ISO-8601 layout used for CreatedAt in API responses.
const TimestampLayout = time.RFC3339Nano

// DateLayout is the calendar date layout accepted by the created_date filter.
const DateLayout = "2006-01-02"

// Variant identifies which projection of BroadcastContact the data source exposes.
type Variant string

const (
	// VariantBase exposes ContactName, Heading and CreatedAt.
	VariantBase Variant = "base"
	// VariantExtended additionally exposes MobilePhone.
	VariantExtended Variant = "extended"
)

// HasMobile reports whether the variant carries the MobilePhone column.
func (v Variant) HasMobile() bool {
	return v == VariantExtended
}

// Contact is a single BroadcastContact row. Nil pointers are SQL NULLs and
// are rendered as JSON null.
type Contact struct {
	ContactName *string
	Heading     *string
	MobilePhone *string
	CreatedAt   *time.Time

	// Extended marks rows read from the extended source; only those carry
	// the MobilePhone key in JSON.
	Extended bool
}

type baseContactJSON struct {
	ContactName *string `json:"ContactName"`
	Heading     *string `json:"Heading"`
	CreatedAt   *string `json:"CreatedAt"`
}

type extendedContactJSON struct {
	ContactName *string `json:"ContactName"`
	Heading     *string `json:"Heading"`
	MobilePhone *string `json:"MobilePhone"`
	CreatedAt   *string `json:"CreatedAt"`
}

// MarshalJSON renders CreatedAt as an ISO-8601 string or null, never a zero date.
func (c Contact) MarshalJSON() ([]byte, error) {
	var createdAt *string
	if c.CreatedAt != nil {
		s := c.CreatedAt.Format(TimestampLayout)
		createdAt = &s
	}
	if c.Extended {
		return json.Marshal(extendedContactJSON{
			ContactName: c.ContactName,
			Heading:     c.Heading,
			MobilePhone: c.MobilePhone,
			CreatedAt:   createdAt,
		})
	}
	return json.Marshal(baseContactJSON{
		ContactName: c.ContactName,
		Heading:     c.Heading,
		CreatedAt:   createdAt,
	})
}

// SortOrder selects the fixed ordering of /contacts results.
type SortOrder string

const (
	// SortCreatedDesc orders by CreatedAt, newest first, rows without a timestamp last.
	SortCreatedDesc SortOrder = "created"
	// SortHeadingName orders by Heading then ContactName, ascending.
	SortHeadingName SortOrder = "heading"
)

// Valid reports whether s is one of the known orders.
func (s SortOrder) Valid() bool {
	return s == SortCreatedDesc || s == SortHeadingName
}

// ContactFilter carries the optional criteria for listing contacts.
// Empty slices and a nil CreatedDate impose no constraint; all supplied
// criteria are combined with AND.
type ContactFilter struct {
	ContactNames  []string
	Headings      []string
	MobileNumbers []string
	// CreatedDate matches the calendar date of CreatedAt, ignoring time of day.
	CreatedDate *time.Time
	// Sort defaults to the service's configured order when empty.
	Sort SortOrder
}

// IsEmpty reports whether the filter imposes no constraint at all.
func (f ContactFilter) IsEmpty() bool {
	return len(f.ContactNames) == 0 &&
		len(f.Headings) == 0 &&
		len(f.MobileNumbers) == 0 &&
		f.CreatedDate == nil
}

// FilterOptions lists the distinct values available for each filterable column.
type FilterOptions struct {
	ContactNames  []string
	Headings      []string
	MobileNumbers []string

	// Extended marks options read from the extended source; only those
	// carry the mobile_numbers key in JSON.
	Extended bool
}

// EmptyFilterOptions returns a well-shaped options value with every list empty.
func EmptyFilterOptions(v Variant) *FilterOptions {
	opts := &FilterOptions{
		ContactNames: []string{},
		Headings:     []string{},
		Extended:     v.HasMobile(),
	}
	if opts.Extended {
		opts.MobileNumbers = []string{}
	}
	return opts
}

type baseOptionsJSON struct {
	ContactNames []string `json:"contact_names"`
	Headings     []string `json:"headings"`
}

type extendedOptionsJSON struct {
	ContactNames  []string `json:"contact_names"`
	Headings      []string `json:"headings"`
	MobileNumbers []string `json:"mobile_numbers"`
}

// MarshalJSON always renders lists as arrays, never null.
func (o FilterOptions) MarshalJSON() ([]byte, error) {
	names := nonNil(o.ContactNames)
	headings := nonNil(o.Headings)
	if o.Extended {
		return json.Marshal(extendedOptionsJSON{
			ContactNames:  names,
			Headings:      headings,
			MobileNumbers: nonNil(o.MobileNumbers),
		})
	}
	return json.Marshal(baseOptionsJSON{ContactNames: names, Headings: headings})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
