package service

import (
	"context"

	"github.com/broadcastcontacts/backend/internal/model"
)

// ContactService answers the two read-only queries over the contact source.
type ContactService interface {
	// FilterOptions returns the distinct non-null values of every filterable column.
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)

	// Search returns the contacts matching every supplied criterion.
	// Blank and duplicate values in f are dropped and an unset sort gets the configured default.
	Search(ctx context.Context, f model.ContactFilter) ([]*model.Contact, error)

	// Variant reports which column set the source exposes.
	Variant() model.Variant
}
