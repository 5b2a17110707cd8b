package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/broadcastcontacts/backend/internal/metrics"
	"github.com/broadcastcontacts/backend/internal/model"
	"github.com/broadcastcontacts/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo        repository.ContactRepository
	variant     model.Variant
	defaultSort model.SortOrder
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository, variant model.Variant, defaultSort model.SortOrder) ContactService {
	if !defaultSort.Valid() {
		defaultSort = model.SortCreatedDesc
	}
	return &contactServiceImpl{repo: repo, variant: variant, defaultSort: defaultSort}
}

func (s *contactServiceImpl) Variant() model.Variant { return s.variant }

func (s *contactServiceImpl) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	start := time.Now()
	opts, err := s.repo.ListFilterOptions(ctx)
	metrics.RecordQuery("filter_options", time.Since(start), FailureReason(err))
	if err != nil {
		return nil, err
	}
	return opts, nil
}

func (s *contactServiceImpl) Search(ctx context.Context, f model.ContactFilter) ([]*model.Contact, error) {
	f.ContactNames = compact(f.ContactNames)
	f.Headings = compact(f.Headings)
	f.MobileNumbers = compact(f.MobileNumbers)
	if !s.variant.HasMobile() {
		f.MobileNumbers = nil
	}
	if f.Sort == "" {
		f.Sort = s.defaultSort
	}

	start := time.Now()
	contacts, err := s.repo.QueryContacts(ctx, f)
	metrics.RecordQuery("contacts", time.Since(start), FailureReason(err))
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// FailureReason classifies a repository error for logs, metrics and the
// degraded-response header. It returns "" for nil.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, repository.ErrConnectivity):
		return metrics.KindConnectivity
	default:
		return metrics.KindQuery
	}
}

// compact drops blank values and duplicates, keeping first-seen order.
// Values are matched exactly, so non-blank values are not trimmed.
func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
