package handler

import (
	"net/http"
	"time"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
	"github.com/albertoramos98/hostflow-homolog/internal/service"
)

// AvailabilityHandler exposes availability checks, price quotes, search,
// and the day-by-day calendar.
type AvailabilityHandler struct {
	svc *service.AvailabilityService
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// rangeParams extracts the required check_in/check_out query parameters.
func rangeParams(r *http.Request) (time.Time, time.Time, error) {
	in, err := queryDate(r, "check_in")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := queryDate(r, "check_out")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if in == nil || out == nil {
		return time.Time{}, time.Time{}, model.Validationf("check_in and check_out are required")
	}
	return *in, *out, nil
}

// Check handles GET /accommodations/{id}/availability?check_in=&check_out=
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	in, out, err := rangeParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	free, err := h.svc.Check(r.Context(), id, in, out)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accommodation_id": id,
		"check_in_date":    in.Format(model.DateLayout),
		"check_out_date":   out.Format(model.DateLayout),
		"available":        free,
	})
}

// Quote handles GET /accommodations/{id}/quote?check_in=&check_out=
func (h *AvailabilityHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	in, out, err := rangeParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	quote, err := h.svc.Quote(r.Context(), id, in, out)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// Search handles GET /accommodations/search
// Filters by capacity, type, and price; with a date range it returns only
// free units, each annotated with the total for that stay.
func (h *AvailabilityHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := model.SearchRequest{
		PropertyID:    queryInt64Ptr(r, "property_id"),
		Type:          r.URL.Query().Get("type"),
		Guests:        queryInt(r, "guests"),
		MinPriceCents: queryInt64Ptr(r, "min_price_cents"),
		MaxPriceCents: queryInt64Ptr(r, "max_price_cents"),
	}
	var err error
	if req.CheckInDate, err = queryDate(r, "check_in"); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.CheckOutDate, err = queryDate(r, "check_out"); err != nil {
		writeServiceError(w, err)
		return
	}

	results, err := h.svc.Search(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Calendar handles GET /accommodations/{id}/calendar?start=&days=
func (h *AvailabilityHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	start, err := queryDate(r, "start")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var from time.Time
	if start != nil {
		from = *start
	}
	cal, err := h.svc.Calendar(r.Context(), id, from, queryInt(r, "days"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}
