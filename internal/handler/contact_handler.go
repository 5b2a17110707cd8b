package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/broadcastcontacts/backend/internal/metrics"
	"github.com/broadcastcontacts/backend/internal/model"
	"github.com/broadcastcontacts/backend/internal/service"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// DegradedHeader is set on 200 responses that were served empty because the
// data store could not be read. Its value is "connectivity" or "query".
const DegradedHeader = "X-Data-Degraded"

// ContactHandler serves the read-only contact queries.
type ContactHandler struct {
	contactService service.ContactService
	validate       *validator.Validate
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

// listParams holds the scalar query parameters of GET /contacts.
type listParams struct {
	CreatedDate string `validate:"omitempty,datetime=2006-01-02"`
	Sort        string `validate:"omitempty,oneof=created heading"`
}

// FilterOptions handles GET /filter-options.
// A data store failure still answers 200 with every list present and empty.
func (h *ContactHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.contactService.FilterOptions(r.Context())
	if err != nil {
		h.degrade(w, r, "filter_options", err)
		writeJSON(w, http.StatusOK, model.EmptyFilterOptions(h.contactService.Variant()))
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// List handles GET /contacts.
// contact_names, headings and mobile_numbers may repeat; created_date is YYYY-MM-DD;
// sort is "created" or "heading". A data store failure answers 200 with [].
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := listParams{
		CreatedDate: q.Get("created_date"),
		Sort:        q.Get("sort"),
	}
	if err := h.validate.Struct(params); err != nil {
		writeError(w, http.StatusBadRequest, invalidParamCode(err))
		return
	}

	filter := model.ContactFilter{
		ContactNames:  q["contact_names"],
		Headings:      q["headings"],
		MobileNumbers: q["mobile_numbers"],
		Sort:          model.SortOrder(params.Sort),
	}
	if params.CreatedDate != "" {
		d, err := time.Parse(model.DateLayout, params.CreatedDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_created_date")
			return
		}
		filter.CreatedDate = &d
	}

	contacts, err := h.contactService.Search(r.Context(), filter)
	if err != nil {
		h.degrade(w, r, "contacts", err)
		writeJSON(w, http.StatusOK, []*model.Contact{})
		return
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

// degrade marks the response as served without data and records why.
func (h *ContactHandler) degrade(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	reason := service.FailureReason(err)
	w.Header().Set(DegradedHeader, reason)
	metrics.RecordDegraded(endpoint, reason)
	slog.ErrorContext(r.Context(), "serving empty response after data store failure",
		"endpoint", endpoint,
		"reason", reason,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
}

func invalidParamCode(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Sort" {
		return "invalid_sort"
	}
	return "invalid_created_date"
}
